// Package pdf turns purchase-invoice PDFs into raw text and tables through
// a layered fallback: direct text extraction, a second independent engine,
// a content-stream salvage pass, and finally OCR over rasterized pages.
package pdf

// RawDocument holds everything recovered from one input document. It is
// produced once per parse call and never mutated afterwards.
type RawDocument struct {
	// Text is the concatenated text body, page order preserved.
	Text string

	// Tables holds detected tables as row-major cell grids. Optional
	// enrichment: table extraction failures leave this empty.
	Tables [][][]string

	// PageCount as reported by the PDF, 0 if unknown.
	PageCount int

	// Source names the engine that produced Text.
	Source string

	// Warnings collected from failed or degraded stages.
	Warnings []string
}

// NonWhitespaceLen counts the non-whitespace characters of s.
func NonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' && r != '\f' {
			n++
		}
	}
	return n
}
