// Package items turns detected tables into invoice line items, identifying
// header columns semantically and cross-validating each row against
// pharmaceutical plausibility heuristics.
package items

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/patterns"
)

var matcher = patterns.NewMatcher()

// columnSynonyms resolve header cells to item fields by keyword
// containment.
var columnSynonyms = map[string][]string{
	"description": {"description", "particulars", "item", "product", "goods", "drug", "medicine", "name of"},
	"hsn":         {"hsn", "sac"},
	"batch":       {"batch", "b.no", "bno", "lot"},
	"expiry":      {"exp", "expiry", "exp.dt", "exp dt"},
	"quantity":    {"qty", "quantity", "qnty", "nos"},
	"rate":        {"rate", "price", "mrp", "ptr", "unit price"},
	"total":       {"total", "amount", "amt", "value", "net"},
	"discount":    {"disc", "discount"},
	"tax":         {"gst", "tax", "cgst", "sgst", "igst"},
}

// columns holds resolved column indices for one table; -1 means the column
// is absent.
type columns struct {
	description int
	hsn         int
	batch       int
	expiry      int
	quantity    int
	rate        int
	total       int
	discount    int
	tax         int
	taxAmount   int
	headerRow   int
}

// placeholders are description values that mark a non-item row.
var placeholders = map[string]bool{"": true, "none": true, "nan": true, "-": true}

// ParseItems extracts invoice items from tables, with text as fallback
// context for batch/expiry recovery. Returns the items plus an overall
// confidence: the mean across tables of the mean per-item confidence,
// 0 when no items were produced.
func ParseItems(tables [][][]string, text string) ([]model.InvoiceItem, float64) {
	var all []model.InvoiceItem
	var tableConfs []float64

	for _, table := range tables {
		items := parseTable(table)
		if len(items) == 0 {
			continue
		}
		sum := 0.0
		for _, it := range items {
			sum += it.Confidence
		}
		tableConfs = append(tableConfs, sum/float64(len(items)))
		all = append(all, items...)
	}

	if len(all) == 0 {
		return nil, 0
	}
	conf := 0.0
	for _, c := range tableConfs {
		conf += c
	}
	return all, conf / float64(len(tableConfs))
}

func parseTable(table [][]string) []model.InvoiceItem {
	cols, ok := resolveColumns(table)
	if !ok {
		return nil
	}

	var items []model.InvoiceItem
	for i := cols.headerRow + 1; i < len(table); i++ {
		row := table[i]
		if nonEmptyCells(row) < 3 {
			continue
		}
		item, ok := parseRow(row, cols)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// resolveColumns finds the header row (first row with at least two
// non-empty cells) and maps columns by synonym containment. Unresolved
// columns stay -1; rows simply leave those item fields at defaults.
func resolveColumns(table [][]string) (columns, bool) {
	cols := columns{
		description: -1, hsn: -1, batch: -1, expiry: -1,
		quantity: -1, rate: -1, total: -1, discount: -1,
		tax: -1, taxAmount: -1,
		headerRow: -1,
	}

	for rowIdx, row := range table {
		if nonEmptyCells(row) < 2 {
			continue
		}
		cols.headerRow = rowIdx
		for colIdx, cell := range row {
			header := strings.ToLower(strings.TrimSpace(cell))
			if header == "" {
				continue
			}
			switch {
			case cols.description == -1 && containsAny(header, columnSynonyms["description"]):
				cols.description = colIdx
			case cols.hsn == -1 && containsAny(header, columnSynonyms["hsn"]):
				cols.hsn = colIdx
			case cols.batch == -1 && containsAny(header, columnSynonyms["batch"]):
				cols.batch = colIdx
			case cols.expiry == -1 && containsAny(header, columnSynonyms["expiry"]):
				cols.expiry = colIdx
			case cols.quantity == -1 && containsAny(header, columnSynonyms["quantity"]):
				cols.quantity = colIdx
			case containsAny(header, columnSynonyms["tax"]):
				// "CGST Amt" style columns hold amounts, "GST%" / "Tax Rate"
				// style columns hold percentages
				if strings.Contains(header, "amt") || strings.Contains(header, "amount") {
					if cols.taxAmount == -1 {
						cols.taxAmount = colIdx
					}
				} else if cols.tax == -1 {
					cols.tax = colIdx
				}
			case cols.rate == -1 && containsAny(header, columnSynonyms["rate"]):
				cols.rate = colIdx
			case cols.discount == -1 && containsAny(header, columnSynonyms["discount"]):
				cols.discount = colIdx
			case cols.total == -1 && containsAny(header, columnSynonyms["total"]):
				cols.total = colIdx
			}
		}
		break
	}

	if cols.headerRow == -1 {
		return cols, false
	}
	// without a description column, fall back to the widest text cell later;
	// a table with no resolvable columns at all is not an item table
	if cols.description == -1 && cols.quantity == -1 && cols.total == -1 {
		return cols, false
	}
	return cols, true
}

func parseRow(row []string, cols columns) (model.InvoiceItem, bool) {
	item := model.InvoiceItem{}

	desc := cellAt(row, cols.description)
	if cols.description == -1 {
		// no resolved description column: take the longest non-numeric cell
		desc = widestTextCell(row)
	}
	// a resolved-but-empty description cell marks a non-item row
	if placeholders[strings.ToLower(strings.TrimSpace(desc))] {
		return item, false
	}
	item.Description = strings.TrimSpace(desc)

	item.HSN = cellAt(row, cols.hsn)
	item.Batch = cellAt(row, cols.batch)
	item.Expiry = cellAt(row, cols.expiry)
	item.Quantity = numericValue(cellAt(row, cols.quantity))
	item.UnitPrice = numericValue(cellAt(row, cols.rate))
	item.Discount = numericValue(cellAt(row, cols.discount))
	item.TaxPercent = numericValue(cellAt(row, cols.tax))
	item.TaxAmount = numericValue(cellAt(row, cols.taxAmount))
	item.Total = numericValue(cellAt(row, cols.total))

	scoreItem(&item)
	return item, true
}

// scoreItem accumulates confidence additively from independent evidence,
// and runs the description-sweep recovery for missing batch/expiry.
func scoreItem(item *model.InvoiceItem) {
	conf := 0.0

	if len(matcher.ExtractDrugNames(item.Description)) > 0 {
		conf += 0.4
	}

	if density := matcher.KeywordDensity(item.Description); density > 0 {
		boost := density * 1.5
		if boost > 0.3 {
			boost = 0.3
		}
		conf += boost
	}

	if len(matcher.ExtractStrengths(item.Description)) > 0 {
		conf += 0.2
	}

	if arithmeticallyPlausible(item.Quantity, item.UnitPrice, item.Total) {
		conf += 0.3
	}

	if item.HSN != "" {
		if ok, hsnConf := matcher.ValidateHSNPharma(item.HSN); ok {
			conf += 0.3 * hsnConf
		}
	}

	// secondary sweep: batch/expiry often ride inside the description cell
	if item.Batch == "" {
		if ms := matcher.ExtractBatchNumbers(item.Description); len(ms) > 0 {
			item.Batch = ms[0].Text
			conf += 0.1
		}
	}
	if item.Expiry == "" {
		if ms := matcher.ExtractExpiryDates(item.Description); len(ms) > 0 {
			item.Expiry = ms[0].Text
			conf += 0.1
		}
	}

	if conf > 1 {
		conf = 1
	}
	item.Confidence = conf
}

// arithmeticallyPlausible reports whether quantity*rate lands within 10%
// of the stated line total. Decimal arithmetic keeps the tolerance check
// free of float drift.
func arithmeticallyPlausible(qty, rate, total float64) bool {
	if qty <= 0 || rate <= 0 || total <= 0 {
		return false
	}
	product := decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(rate))
	stated := decimal.NewFromFloat(total)
	diff := product.Sub(stated).Abs()
	return diff.Div(stated).LessThan(decimal.NewFromFloat(0.1))
}

var numericRE = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// numericValue coerces a raw cell to a number: thousands separators are
// stripped and the first numeric substring wins, so "10+2F" yields 10 and
// malformed cells yield 0 rather than an error.
func numericValue(cell string) float64 {
	cell = strings.ReplaceAll(cell, ",", "")
	m := numericRE.FindString(cell)
	if m == "" {
		return 0
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if f < 0 {
		return 0
	}
	return f
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func widestTextCell(row []string) string {
	best := ""
	for _, c := range row {
		c = strings.TrimSpace(c)
		if numericRE.FindString(c) == c {
			continue // purely numeric
		}
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}
