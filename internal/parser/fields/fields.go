// Package fields implements per-field header extractors. Each extractor is
// a pure function over raw document text returning a value with a
// confidence heuristic; extractors never fail, they degrade.
package fields

import (
	"regexp"
	"strings"
	"time"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/patterns"
)

var matcher = patterns.NewMatcher()

// headerLines is how deep into the document the supplier-name scan looks.
// Supplier identity nearly always sits in the letterhead region.
const headerLines = 10

var legalSuffixes = []string{
	"pvt ltd", "pvt. ltd", "private limited", "ltd", "limited", "llp",
	"pharmaceuticals", "pharma", "distributors", "agencies", "enterprises",
	"medicals", "medicos", "traders",
}

// Supplier scans the leading lines of text for the supplier name.
// First confident match wins; scores are not averaged across lines.
func Supplier(text string) model.Field[string] {
	lines := strings.Split(text, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}

	var fallback string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, re := range patterns.Patterns(patterns.CategoryCompany) {
			if m := re.FindStringSubmatch(line); m != nil {
				name := strings.TrimSpace(m[len(m)-1])
				if name != "" {
					return model.NewField(name, 0.9)
				}
			}
		}

		if density := matcher.KeywordDensity(line); density >= 0.1 {
			conf := 0.5 + density
			if conf > 0.85 {
				conf = 0.85
			}
			return model.NewField(line, conf)
		}

		lower := strings.ToLower(line)
		for _, suffix := range legalSuffixes {
			if strings.Contains(lower, suffix) {
				return model.NewField(line, 0.75)
			}
		}

		if fallback == "" && len(line) > 15 {
			fallback = line
		}
	}

	if fallback != "" {
		return model.NewField(fallback, 0.3)
	}
	return model.Field[string]{}
}

// GSTIN finds the first GSTIN-shaped token. Confidence 0.9 when the full
// positional substructure validates, 0.6 for shape-only matches. No
// checksum is computed.
func GSTIN(text string) model.Field[string] {
	m := patterns.GSTIN.FindString(text)
	if m == "" {
		return model.Field[string]{}
	}
	conf := matcher.ValidateGSTIN(m)
	if conf == 0 {
		conf = 0.6
	}
	return model.NewField(m, conf)
}

var invoiceWordRE = regexp.MustCompile(`(?i)\binvoice\b`)
var standaloneTokenRE = regexp.MustCompile(`\b[A-Za-z0-9][A-Za-z0-9/\-]{2,19}\b`)

// InvoiceNumber tries pharma-specific shapes first, then generic
// "invoice/bill no" labels, then a standalone alphanumeric token on any
// line mentioning "invoice". An empty result is a hard requirement failure
// on the typed parsing path.
func InvoiceNumber(text string) model.Field[string] {
	pats := patterns.Patterns(patterns.CategoryInvoiceNumber)

	confidences := []float64{0.9, 0.7, 0.7}
	for i, re := range pats {
		if m := re.FindStringSubmatch(text); m != nil && len(m) > 1 && m[1] != "" {
			return model.NewField(strings.TrimSpace(m[1]), confidences[min(i, len(confidences)-1)])
		}
	}

	// scan invoice-mentioning lines for a plausible standalone token
	for _, line := range strings.Split(text, "\n") {
		if !invoiceWordRE.MatchString(line) {
			continue
		}
		for _, tok := range standaloneTokenRE.FindAllString(line, -1) {
			lower := strings.ToLower(tok)
			if lower == "invoice" || lower == "bill" || lower == "tax" || lower == "no" {
				continue
			}
			if !strings.ContainsAny(tok, "0123456789") {
				continue
			}
			return model.NewField(tok, 0.5)
		}
	}
	return model.Field[string]{}
}

// datePattern pairs a regex with the layouts its captures parse against.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

// datePatterns are tried in priority order; confidence decreases with the
// pattern index.
var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),
		layouts: []string{"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006"},
	},
	{
		re:      regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		layouts: []string{"2006-01-02"},
	},
	{
		re:      regexp.MustCompile(`\b(\d{1,2}[ -][A-Za-z]{3}[ -]\d{4})\b`),
		layouts: []string{"02 Jan 2006", "2 Jan 2006", "02-Jan-2006", "2-Jan-2006"},
	},
	{
		re:      regexp.MustCompile(`\b(\d{1,2} [A-Za-z]{4,9},? \d{4})\b`),
		layouts: []string{"2 January 2006", "02 January 2006", "2 January, 2006"},
	},
}

// InvoiceDate finds a parseable invoice date. The first match that parses
// wins; confidence decays with pattern priority (0.9, 0.8, 0.7, ...).
// When nothing parses, the caller substitutes today with zero confidence.
func InvoiceDate(text string) model.Field[time.Time] {
	for i, dp := range datePatterns {
		for _, m := range dp.re.FindAllStringSubmatch(text, -1) {
			for _, layout := range dp.layouts {
				if t, err := time.Parse(layout, m[1]); err == nil {
					conf := 0.9 - 0.1*float64(i)
					if conf < 0.5 {
						conf = 0.5
					}
					return model.NewField(t, conf)
				}
			}
		}
	}
	return model.Field[time.Time]{}
}

// DrugLicense takes the highest-confidence drug-license match from the
// pattern library.
func DrugLicense(text string) model.Field[string] {
	var best patterns.Match
	for _, m := range matcher.ExtractDrugLicenses(text) {
		if m.Confidence > best.Confidence {
			best = m
		}
	}
	if best.Text == "" {
		return model.Field[string]{}
	}
	return model.NewField(best.Text, best.Confidence)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
