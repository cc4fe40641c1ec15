package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
)

const (
	// below this many characters the primary engine's output is considered
	// insufficient and the secondary engine is tried
	retryThreshold = 100
	// below this many non-whitespace characters the document is considered
	// unextracted and the next fallback stage runs
	minTextLen = 50
)

// Extractor runs the layered extraction chain. It holds no per-call state
// and is safe for concurrent use.
type Extractor struct {
	engines     []TextEngine
	tables      TableEngine
	ocr         OCR
	stream      *contentStreamEngine
	pdftoppmBin string
	dpi         int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTextEngines replaces the text-engine chain. Used by tests.
func WithTextEngines(engines ...TextEngine) Option {
	return func(e *Extractor) { e.engines = engines }
}

// WithTableEngine replaces the table engine.
func WithTableEngine(t TableEngine) Option {
	return func(e *Extractor) { e.tables = t }
}

// WithOCR replaces the OCR stage.
func WithOCR(o OCR) Option {
	return func(e *Extractor) { e.ocr = o }
}

// WithRasterizer sets the pdftoppm binary and DPI for the OCR stage.
func WithRasterizer(bin string, dpi int) Option {
	return func(e *Extractor) {
		e.pdftoppmBin = bin
		e.dpi = dpi
	}
}

// WithOCRLanguage sets the tesseract language (default "eng").
func WithOCRLanguage(lang string) Option {
	return func(e *Extractor) { e.ocr = newTesseractOCR(lang) }
}

// NewExtractor builds the default chain: ledongthuc, then dslipak, then a
// pdfcpu content-stream salvage pass, then rasterize+tesseract. Tables come
// from tabula.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		engines: []TextEngine{ledongthucEngine{}, dslipakEngine{}},
		tables:  tabulaEngine{},
		ocr:     newTesseractOCR("eng"),
		stream:  newContentStreamEngine(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile reads path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.Extract(ctx, data)
}

// Extract turns PDF bytes into a RawDocument. It fails with
// *model.ExtractionError only when every fallback stage, OCR included,
// yields a near-empty text body.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*RawDocument, error) {
	doc := &RawDocument{}
	if e.stream != nil {
		doc.PageCount = e.stream.pageCount(data)
	}

	// table pass is independent of text success; failures are swallowed
	if e.tables != nil {
		tables, err := e.tables.Extract(data)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("table extraction: %v", err))
		} else {
			doc.Tables = tables
		}
	}

	// text engines in order; first one with enough text wins
	for i, engine := range e.engines {
		text, err := engine.Extract(data)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s: %v", engine.Name(), err))
			continue
		}
		if len(text) > len(doc.Text) {
			doc.Text = text
			doc.Source = engine.Name()
		}
		// primary output long enough: skip the secondary engine
		if i == 0 && len(strings.TrimSpace(text)) >= retryThreshold {
			break
		}
	}

	// content-stream salvage before paying for OCR
	if NonWhitespaceLen(doc.Text) < minTextLen && e.stream != nil {
		if text, err := e.stream.Extract(data); err == nil && len(text) > len(doc.Text) {
			doc.Text = text
			doc.Source = e.stream.Name()
		} else if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s: %v", e.stream.Name(), err))
		}
	}

	// last resort: rasterize and OCR every page in order
	if NonWhitespaceLen(doc.Text) < minTextLen && e.ocr != nil {
		pages, cleanup, err := rasterize(ctx, data, e.pdftoppmBin, e.dpi)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("rasterize: %v", err))
		} else {
			text, warns := ocrPages(ctx, e.ocr, pages)
			cleanup()
			doc.Warnings = append(doc.Warnings, warns...)
			if len(text) > len(doc.Text) {
				doc.Text = text
				doc.Source = "ocr"
			}
		}
	}

	if NonWhitespaceLen(doc.Text) < minTextLen {
		return nil, &model.ExtractionError{
			Reason: fmt.Sprintf("no extractable text after %d stages (got %d chars)",
				len(e.engines)+2, NonWhitespaceLen(doc.Text)),
		}
	}
	return doc, nil
}
