package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	dpdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"
)

// TextEngine extracts the text layer of a PDF. Engines are tried in order
// until one produces enough text.
type TextEngine interface {
	Name() string
	Extract(data []byte) (string, error)
}

// ledongthucEngine is the primary engine.
type ledongthucEngine struct{}

func (ledongthucEngine) Name() string { return "ledongthuc" }

func (ledongthucEngine) Extract(data []byte) (string, error) {
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// dslipakEngine is the secondary engine with an independent PDF parser.
// Corrupted or oddly encoded documents that defeat the primary engine
// often still open here.
type dslipakEngine struct{}

func (dslipakEngine) Name() string { return "dslipak" }

func (dslipakEngine) Extract(data []byte) (string, error) {
	// this parser only opens files
	tmp, err := os.CreateTemp("", "invoice-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc, err := dpdf.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
