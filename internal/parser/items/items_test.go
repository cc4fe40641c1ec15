package items_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/items"
)

var header = []string{"S.No", "Product Description", "HSN Code", "Batch", "Expiry", "Qty", "Rate", "Amount"}

func TestParseItemsBasic(t *testing.T) {
	tables := [][][]string{{
		header,
		{"1", "Paracetamol 500mg Tablet", "30049099", "PB123", "05/26", "10", "25.00", "250.00"},
		{"2", "Amoxicillin 250mg Capsule", "30041000", "AX987", "11/25", "5", "48.00", "240.00"},
	}}

	got, conf := items.ParseItems(tables, "")
	require.Len(t, got, 2)
	assert.Greater(t, conf, 0.5)

	first := got[0]
	assert.Equal(t, "Paracetamol 500mg Tablet", first.Description)
	assert.Equal(t, "30049099", first.HSN)
	assert.Equal(t, "PB123", first.Batch)
	assert.Equal(t, "05/26", first.Expiry)
	assert.Equal(t, 10.0, first.Quantity)
	assert.Equal(t, 25.0, first.UnitPrice)
	assert.Equal(t, 250.0, first.Total)
}

func TestParseItemsNoTables(t *testing.T) {
	got, conf := items.ParseItems(nil, "some invoice text")
	assert.Empty(t, got)
	assert.Zero(t, conf)
}

func TestQuantityWithFreeGoodsNotation(t *testing.T) {
	// "10+2F" means 10 billed plus 2 free; the first integer substring wins
	tables := [][][]string{{
		header,
		{"1", "Cetirizine 10mg Tablet", "30049099", "CZ100", "03/26", "10+2F", "12.00", "120.00"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Quantity)
}

func TestMalformedNumericYieldsZero(t *testing.T) {
	tables := [][][]string{{
		header,
		{"1", "Ibuprofen 400mg Tablet", "30049099", "IB500", "07/26", "n/a", "--", "xx"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Quantity)
	assert.Zero(t, got[0].UnitPrice)
	assert.Zero(t, got[0].Total)
}

func TestArithmeticPlausibilityBoostsConfidence(t *testing.T) {
	// low-signal description so the arithmetic boost is the only evidence
	// separating the two rows
	exact := [][][]string{{
		header,
		{"1", "Surgical Cotton Roll", "48182000", "CR100", "05/26", "10", "25.00", "250.00"},
	}}
	off := [][][]string{{
		header,
		{"1", "Surgical Cotton Roll", "48182000", "CR100", "05/26", "10", "25.00", "400.00"},
	}}

	exactItems, _ := items.ParseItems(exact, "")
	offItems, _ := items.ParseItems(off, "")
	require.Len(t, exactItems, 1)
	require.Len(t, offItems, 1)
	assert.Greater(t, exactItems[0].Confidence, offItems[0].Confidence)
}

func TestPharmaItemScoresHigh(t *testing.T) {
	tables := [][][]string{{
		header,
		{"1", "Paracetamol 500mg Tablet", "30049099", "PB123", "05/26", "10", "25.00", "250.00"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Greater(t, got[0].Confidence, 0.8)
}

func TestSkipsPlaceholderAndSparseRows(t *testing.T) {
	tables := [][][]string{{
		header,
		{"", "", "", "", "", "", "", ""},
		{"1", "none", "30049099", "B1", "01/26", "1", "10", "10"},
		{"2", "-", "30049099", "B2", "01/26", "1", "10", "10"},
		{"", "", "", "", "", "5", "", ""},
		{"3", "Dolo 650mg Tablet", "30049099", "D650", "09/26", "2", "30.00", "60.00"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Dolo 650mg Tablet", got[0].Description)
}

func TestSkipsRowWithEmptyDescriptionCell(t *testing.T) {
	// the description column resolved but the cell is blank: the row is a
	// non-item row, not a candidate for the widest-cell fallback
	tables := [][][]string{{
		header,
		{"1", "", "30049099", "PB123", "05/26", "10", "25.00", "250.00"},
	}}

	got, conf := items.ParseItems(tables, "")
	assert.Empty(t, got)
	assert.Zero(t, conf)
}

func TestDescriptionFallbackWhenColumnUnresolved(t *testing.T) {
	tables := [][][]string{{
		{"Sr", "Qty", "Amount", "Details"},
		{"1", "10", "250.00", "Paracetamol 500mg Tablet"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Paracetamol 500mg Tablet", got[0].Description)
	assert.Equal(t, 10.0, got[0].Quantity)
	assert.Equal(t, 250.0, got[0].Total)
}

func TestTaxColumnStyles(t *testing.T) {
	amountStyle := [][][]string{{
		{"Product", "Qty", "Rate", "CGST Amt", "Amount"},
		{"Paracetamol 500mg Tablet", "10", "25.00", "22.50", "250.00"},
	}}
	got, _ := items.ParseItems(amountStyle, "")
	require.Len(t, got, 1)
	assert.Equal(t, 22.5, got[0].TaxAmount)
	assert.Zero(t, got[0].TaxPercent)

	percentStyle := [][][]string{{
		{"Product", "Qty", "Rate", "GST%", "Amount"},
		{"Paracetamol 500mg Tablet", "10", "25.00", "9", "250.00"},
	}}
	got, _ = items.ParseItems(percentStyle, "")
	require.Len(t, got, 1)
	assert.Equal(t, 9.0, got[0].TaxPercent)
	assert.Zero(t, got[0].TaxAmount)
}

func TestBatchRecoveredFromDescription(t *testing.T) {
	// no batch column resolved; the description sweep recovers it
	tables := [][][]string{{
		{"Product", "Qty", "Rate", "Amount"},
		{"Azithromycin 500mg Batch AZ5500", "3", "90.00", "270.00"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Equal(t, "AZ5500", got[0].Batch)
}

func TestUnresolvedColumnsLeaveDefaults(t *testing.T) {
	tables := [][][]string{{
		{"Particulars", "Qty", "Amount"},
		{"Metformin 500mg Tablet", "10", "85.00"},
	}}

	got, _ := items.ParseItems(tables, "")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].HSN)
	assert.Zero(t, got[0].UnitPrice)
	assert.Equal(t, 10.0, got[0].Quantity)
	assert.Equal(t, 85.0, got[0].Total)
}

func TestReconcile(t *testing.T) {
	tables := [][][]string{{
		header,
		{"1", "Paracetamol 500mg Tablet", "30049099", "PB123", "05/26", "10", "25.00", "250.00"},
		{"2", "Amoxicillin 250mg Capsule", "30041000", "AX987", "11/25", "5", "48.00", "240.00"},
	}}
	text := "CGST : 44.10\nSGST : 44.10\nGrand Total : 578.20\n"

	lineItems, _ := items.ParseItems(tables, text)
	fin := items.Reconcile(lineItems, text)

	assert.InDelta(t, 490.0, fin.Subtotal, 0.001)
	assert.InDelta(t, 44.10, fin.CGST, 0.001)
	assert.InDelta(t, 44.10, fin.SGST, 0.001)
	assert.Zero(t, fin.IGST)
	assert.InDelta(t, 578.20, fin.GrandTotal, 0.001)
	assert.Greater(t, fin.Confidence, 0.7)
}

func TestReconcileRateBearingTaxLines(t *testing.T) {
	// the amount after "@ 9%" must win, never the rate itself
	text := "CGST @ 9% : 44.10\nSGST @ 9% : 44.10\nGrand Total : 578.20\n"

	fin := items.Reconcile(nil, text)
	assert.InDelta(t, 44.10, fin.CGST, 0.001)
	assert.InDelta(t, 44.10, fin.SGST, 0.001)
	assert.Zero(t, fin.IGST)
	assert.InDelta(t, 578.20, fin.GrandTotal, 0.001)
}

func TestReconcileTrustsLargestPlausibleAmount(t *testing.T) {
	// no labelled grand total and no items: the largest money figure wins
	fin := items.Reconcile(nil, "Amount 120.00 and Rs. 350.00 paid")
	assert.InDelta(t, 350.0, fin.GrandTotal, 0.001)
}
