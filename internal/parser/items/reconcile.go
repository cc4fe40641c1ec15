package items

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
)

// Financials holds reconciled invoice totals and the confidence of the
// reconciliation.
type Financials struct {
	Subtotal   float64
	CGST       float64
	SGST       float64
	IGST       float64
	GrandTotal float64
	Confidence float64
}

var grandTotalRE = regexp.MustCompile(`(?i)(?:grand\s*total|net\s*(?:amount|payable)|total\s*(?:amount|payable)|amount\s*payable)[^0-9\n]{0,15}([0-9,]+(?:\.[0-9]{1,2})?)`)

// Reconcile aggregates item totals, pulls GST components out of the text,
// and determines the grand total. When the item sum and detected amounts
// disagree, the largest plausible parsed amount is trusted: totals printed
// on invoices include tax and rounding the item grid does not.
func Reconcile(itemList []model.InvoiceItem, text string) Financials {
	fin := Financials{}

	subtotal := decimal.Zero
	for _, it := range itemList {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Total))
	}
	fin.Subtotal, _ = subtotal.Float64()

	// the tax pattern family skips "@ rate%" prefixes, so lines like
	// "CGST @ 9% : 44.10" yield the amount rather than the rate
	cgst, sgst, igst := matcher.TaxComponents(text)
	fin.CGST = amountValue(cgst)
	fin.SGST = amountValue(sgst)
	fin.IGST = amountValue(igst)

	candidates := []decimal.Decimal{subtotal}
	if m := grandTotalRE.FindStringSubmatch(text); m != nil {
		if d, ok := parseAmount(m[1]); ok {
			candidates = append(candidates, d)
		}
	}

	// amount sweep: labelled totals are sometimes mangled, but the grand
	// total is still usually the largest money figure on the page
	taxTotal := decimal.NewFromFloat(fin.CGST + fin.SGST + fin.IGST)
	ceiling := subtotal.Add(taxTotal).Mul(decimal.NewFromFloat(1.25))
	for _, am := range matcher.ExtractAmounts(text) {
		d, ok := parseAmount(am.Text)
		if !ok {
			continue
		}
		// plausible: not absurdly larger than items+tax when items exist
		if subtotal.IsPositive() && ceiling.IsPositive() && d.GreaterThan(ceiling) {
			continue
		}
		candidates = append(candidates, d)
	}

	best := decimal.Zero
	for _, c := range candidates {
		if c.GreaterThan(best) {
			best = c
		}
	}
	fin.GrandTotal, _ = best.Float64()

	fin.Confidence = reconciliationConfidence(subtotal, best, taxTotal)
	return fin
}

// reconciliationConfidence is high when the item sum plus detected tax
// lands near the chosen grand total, low when the figures disagree or only
// one side exists.
func reconciliationConfidence(subtotal, grand, tax decimal.Decimal) float64 {
	if grand.IsZero() {
		return 0
	}
	if subtotal.IsZero() {
		return 0.4 // a total with no items to check it against
	}
	expected := subtotal.Add(tax)
	diff := expected.Sub(grand).Abs()
	ratio := diff.Div(grand)
	switch {
	case ratio.LessThan(decimal.NewFromFloat(0.02)):
		return 0.95
	case ratio.LessThan(decimal.NewFromFloat(0.1)):
		return 0.75
	default:
		return 0.4
	}
}

func amountValue(s string) float64 {
	d, ok := parseAmount(s)
	if !ok {
		return 0
	}
	f, _ := d.Float64()
	return f
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
