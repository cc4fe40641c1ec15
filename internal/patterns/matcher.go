package patterns

import (
	"strings"
)

// Match pairs a matched text fragment with a confidence heuristic.
type Match struct {
	Text       string
	Confidence float64
}

// pharmaKeywords are terms whose density in a text hints at pharmaceutical
// content. Used by company and description heuristics.
var pharmaKeywords = []string{
	"pharma", "pharmaceutical", "drug", "medicine", "tablet", "capsule",
	"syrup", "injection", "ointment", "mg", "ml", "batch", "expiry",
	"hsn", "gst", "medical", "healthcare", "laboratories", "formulation",
}

// Matcher provides typed queries over the pattern catalogue. It is
// stateless and safe for concurrent use.
type Matcher struct{}

// NewMatcher returns the catalogue facade.
func NewMatcher() *Matcher { return &Matcher{} }

// IsPharmaCompany scores how strongly text looks like a pharma company
// name: the fraction of company patterns that match, bounded to [0,1].
func (m *Matcher) IsPharmaCompany(text string) float64 {
	pats := Patterns(CategoryCompany)
	if len(pats) == 0 {
		return 0
	}
	hits := 0
	for _, re := range pats {
		if re.MatchString(text) {
			hits++
		}
	}
	// a single family match is already a strong signal
	score := float64(hits) / float64(len(pats)) * 2
	if score > 1 {
		score = 1
	}
	return score
}

// KeywordDensity returns the fraction of words in text that are pharma
// keywords.
func (m *Matcher) KeywordDensity(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range words {
		for _, kw := range pharmaKeywords {
			if strings.Contains(w, kw) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(words))
}

// ExtractDrugNames sweeps the drug-name family over text.
func (m *Matcher) ExtractDrugNames(text string) []Match {
	return m.sweep(CategoryDrugName, text, func(string) float64 { return 0.8 })
}

// ExtractBatchNumbers sweeps the batch family. Confidence is boosted when
// the surrounding text mentions "batch" or "lot" at all.
func (m *Matcher) ExtractBatchNumbers(text string) []Match {
	lower := strings.ToLower(text)
	boost := strings.Contains(lower, "batch") || strings.Contains(lower, "lot")
	return m.sweep(CategoryBatch, text, func(string) float64 {
		if boost {
			return 0.85
		}
		return 0.5
	})
}

// ExtractExpiryDates sweeps the expiry family.
func (m *Matcher) ExtractExpiryDates(text string) []Match {
	return m.sweep(CategoryExpiry, text, func(string) float64 { return 0.75 })
}

// ExtractDrugLicenses sweeps the drug-license family.
func (m *Matcher) ExtractDrugLicenses(text string) []Match {
	return m.sweep(CategoryDrugLicense, text, func(s string) float64 {
		// explicit "D.L. No" style captures carry more signal than bare shapes
		if len(s) >= 8 {
			return 0.8
		}
		return 0.6
	})
}

// ExtractStrengths sweeps the dosage-strength family.
func (m *Matcher) ExtractStrengths(text string) []Match {
	return m.sweep(CategoryStrength, text, func(string) float64 { return 0.8 })
}

// TaxComponents pulls the first CGST, SGST and IGST figures out of text as
// raw strings. The tax family skips "@ 9%" rate prefixes, so rate-bearing
// lines yield the amount, not the rate.
func (m *Matcher) TaxComponents(text string) (cgst, sgst, igst string) {
	pats := Patterns(CategoryTax)
	if s := pats[0].FindStringSubmatch(text); s != nil {
		cgst = s[1]
	}
	if s := pats[1].FindStringSubmatch(text); s != nil {
		sgst = s[1]
	}
	if s := pats[2].FindStringSubmatch(text); s != nil {
		igst = s[1]
	}
	return cgst, sgst, igst
}

// ExtractAmounts sweeps the price family and returns raw amount strings.
func (m *Matcher) ExtractAmounts(text string) []Match {
	return m.sweep(CategoryPrice, text, func(string) float64 { return 0.6 })
}

// ValidateHSNPharma reports whether code falls in a pharmaceutical HSN
// chapter, with a confidence: full-pattern matches score 0.9, a bare
// chapter-prefix match 0.7.
func (m *Matcher) ValidateHSNPharma(code string) (bool, float64) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, 0
	}
	if m := Patterns(CategoryHSN)[0].FindString(code); m == code {
		return true, 0.9
	}
	for _, prefix := range pharmaHSNChapters {
		if strings.HasPrefix(code, prefix) {
			return true, 0.7
		}
	}
	return false, 0
}

// ValidateGSTIN scores a GSTIN candidate: 0.9 when the full positional
// substructure holds, 0.6 for the loose 15-character shape, 0 otherwise.
// No checksum is computed.
func (m *Matcher) ValidateGSTIN(code string) float64 {
	code = strings.TrimSpace(code)
	if gstinStrict.MatchString(code) {
		return 0.9
	}
	if len(code) == 15 && GSTIN.MatchString(code) {
		return 0.6
	}
	return 0
}

// sweep runs every pattern of a category over text, deduplicating matches.
// When a pattern has a capture group the group is taken, otherwise the
// whole match.
func (m *Matcher) sweep(cat Category, text string, conf func(string) float64) []Match {
	var out []Match
	seen := make(map[string]bool)
	for _, re := range Patterns(cat) {
		for _, sub := range re.FindAllStringSubmatch(text, -1) {
			got := sub[0]
			if len(sub) > 1 && sub[1] != "" {
				got = sub[1]
			}
			got = strings.TrimSpace(got)
			if got == "" || seen[got] {
				continue
			}
			seen[got] = true
			out = append(out, Match{Text: got, Confidence: conf(got)})
		}
	}
	return out
}
