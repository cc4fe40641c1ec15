package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pcmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// contentStreamEngine salvages text straight out of PDF content streams via
// pdfcpu. It is the coarsest text pass: output loses layout, but scanned-in
// documents with broken font maps sometimes yield nothing anywhere else.
type contentStreamEngine struct {
	conf *pcmodel.Configuration
}

func newContentStreamEngine() *contentStreamEngine {
	return &contentStreamEngine{conf: pcmodel.NewDefaultConfiguration()}
}

func (*contentStreamEngine) Name() string { return "pdfcpu-content" }

func (e *contentStreamEngine) Extract(data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "pdf-extract-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractContent(bytes.NewReader(data), tmpDir, "content", nil, e.conf); err != nil {
		return "", fmt.Errorf("extract content streams: %w", err)
	}

	var b strings.Builder
	files, _ := os.ReadDir(tmpDir)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(tmpDir, f.Name()))
		if err != nil {
			continue
		}
		if text := streamToText(string(raw)); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// pageCount returns the page count of a PDF, 0 when unreadable.
func (e *contentStreamEngine) pageCount(data []byte) int {
	n, err := api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		return 0
	}
	return n
}

var (
	literalStringRE = regexp.MustCompile(`\(([^)]*)\)`)
	hexStringRE     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// streamToText pulls printable operands of the PDF text operators out of a
// raw content stream: literal strings in parentheses and hex strings in
// angle brackets.
func streamToText(content string) string {
	var b strings.Builder
	for _, m := range literalStringRE.FindAllStringSubmatch(content, -1) {
		if text := unescapePDFString(m[1]); printableEnough(text) {
			b.WriteString(text)
			b.WriteString(" ")
		}
	}
	for _, m := range hexStringRE.FindAllStringSubmatch(content, -1) {
		if text := hexToString(m[1]); printableEnough(text) {
			b.WriteString(text)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
	)
	return replacer.Replace(s)
}

func hexToString(hex string) string {
	var out []byte
	for i := 0; i+1 < len(hex); i += 2 {
		var b byte
		fmt.Sscanf(hex[i:i+2], "%02x", &b)
		out = append(out, b)
	}
	return string(out)
}

// printableEnough requires a majority of characters to be text-like before
// a fragment is kept; content streams are full of binary operands.
func printableEnough(s string) bool {
	if s == "" {
		return false
	}
	printable := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			printable++
		case r == ' ', r == '.', r == ',', r == ':', r == '-', r == '/', r == '%', r == '@':
			printable++
		}
	}
	return float64(printable)/float64(len(s)) > 0.5
}
