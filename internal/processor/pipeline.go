// Package processor orchestrates extraction, strategy selection and
// confidence aggregation into the public parsing entry points.
package processor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/pdf"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/strategy"
)

// Result carries a parse outcome with its provenance.
type Result struct {
	Invoice *model.Invoice `json:"invoice"`
	// StrategyUsed names the strategy that produced the invoice.
	StrategyUsed string `json:"strategy_used"`
	// FirstAttempted names the top-ranked candidate, which may differ from
	// StrategyUsed after fallback.
	FirstAttempted string   `json:"first_attempted,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          error    `json:"-"`
}

// Pipeline wires the extraction layer to the strategy registry. It is
// stateless across calls and safe for concurrent use.
type Pipeline struct {
	extractor *pdf.Extractor
	registry  *strategy.Registry
	log       *zap.Logger
}

// PipelineOption configures the pipeline.
type PipelineOption func(*Pipeline)

// WithExtractor replaces the extraction layer.
func WithExtractor(e *pdf.Extractor) PipelineOption {
	return func(p *Pipeline) { p.extractor = e }
}

// WithRegistry replaces the strategy registry.
func WithRegistry(r *strategy.Registry) PipelineOption {
	return func(p *Pipeline) { p.registry = r }
}

// WithLogger sets the logger; the default is a nop logger.
func WithLogger(log *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline builds a pipeline with the default extractor and registry.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		extractor: pdf.NewExtractor(),
		registry:  strategy.DefaultRegistry(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePDF parses the document at path. It fails with
// *model.ExtractionError when no text is recoverable and with
// *model.ValidationError when a required field is missing.
func (p *Pipeline) ParsePDF(ctx context.Context, path string) (*model.Invoice, error) {
	doc, err := p.extractor.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.parseDocument(doc, true)
}

// ParseBytes parses in-memory PDF bytes, same contract as ParsePDF.
func (p *Pipeline) ParseBytes(ctx context.Context, data []byte) (*model.Invoice, error) {
	doc, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	return p.parseDocument(doc, true)
}

// Process runs the strategy chain over an already-extracted document and
// reports provenance. The lenient factory path builds on this.
func (p *Pipeline) Process(doc *pdf.RawDocument) *Result {
	res := &Result{Warnings: doc.Warnings}

	candidates := p.registry.Select(doc.Text)
	if len(candidates) > 0 {
		res.FirstAttempted = candidates[0].Name()
	}

	for _, cand := range candidates {
		inv, err := cand.Parse(doc.Text, doc.Tables)
		if err != nil {
			// strategy does not apply; fall through to the next candidate
			p.log.Warn("strategy failed",
				zap.String("strategy", cand.Name()),
				zap.Error(err))
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", cand.Name(), err))
			continue
		}
		inv.RawText = doc.Text
		inv.ID = invoiceID(doc.Text)
		res.Invoice = inv
		res.StrategyUsed = cand.Name()
		p.log.Debug("strategy succeeded",
			zap.String("strategy", cand.Name()),
			zap.Int("items", len(inv.Items)),
			zap.Float64("confidence", inv.Confidence))
		return res
	}

	res.Error = fmt.Errorf("no strategy produced an invoice")
	return res
}

// RetryGeneric re-runs the generic strategy over a document. Used by the
// no-items fallback.
func (p *Pipeline) RetryGeneric(doc *pdf.RawDocument) *Result {
	for _, s := range p.registry.Strategies() {
		if s.Name() != "generic" {
			continue
		}
		inv, err := s.Parse(doc.Text, doc.Tables)
		if err != nil {
			return &Result{Error: err}
		}
		inv.RawText = doc.Text
		inv.ID = invoiceID(doc.Text)
		return &Result{Invoice: inv, StrategyUsed: s.Name()}
	}
	return &Result{Error: fmt.Errorf("generic strategy not registered")}
}

func (p *Pipeline) parseDocument(doc *pdf.RawDocument, strict bool) (*model.Invoice, error) {
	res := p.Process(doc)
	if res.Error != nil {
		return nil, res.Error
	}
	if strict {
		if err := res.Invoice.Validate(); err != nil {
			return nil, err
		}
	}
	return res.Invoice, nil
}

// invoiceID derives a stable identifier from document text, so parsing the
// same bytes twice yields identical invoices.
func invoiceID(text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String()
}
