package strategy

import (
	"time"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/fields"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/items"
)

// Confidence weights for the overall invoice score. One formula is applied
// on every path; line items and financial agreement together outweigh any
// single header field.
const (
	weightSupplier  = 0.25
	weightDate      = 0.20
	weightInvoiceNo = 0.15
	weightItems     = 0.25
	weightFinancial = 0.15
)

// genericStrategy handles any supplier through the full heuristic stack.
// It tolerates missing tables, missing dates and missing items, and must
// never fail for structural reasons.
type genericStrategy struct{}

func (*genericStrategy) Name() string       { return "generic" }
func (*genericStrategy) Keywords() []string { return nil }
func (*genericStrategy) Priority() int      { return 0 }

func (*genericStrategy) CanParse(string) bool { return true }

func (*genericStrategy) Parse(text string, tables [][][]string) (*model.Invoice, error) {
	inv, _ := buildInvoice(text, tables)
	return inv, nil
}

// buildInvoice runs every field extractor, the item extractor, and
// financial reconciliation, then aggregates the weighted confidence. It
// also returns whether the item extractor produced anything, for supplier
// strategies that treat an empty grid as "not my layout".
func buildInvoice(text string, tables [][][]string) (*model.Invoice, bool) {
	supplier := fields.Supplier(text)
	gstin := fields.GSTIN(text)
	invoiceNo := fields.InvoiceNumber(text)
	date := fields.InvoiceDate(text)
	license := fields.DrugLicense(text)

	lineItems, itemConf := items.ParseItems(tables, text)
	fin := items.Reconcile(lineItems, text)

	inv := &model.Invoice{
		SupplierName:  supplier.Value,
		SupplierGSTIN: gstin.Value,
		DrugLicense:   license.Value,
		InvoiceNumber: invoiceNo.Value,
		InvoiceDate:   date.Value,
		Items:         lineItems,
		Subtotal:      fin.Subtotal,
		CGST:          fin.CGST,
		SGST:          fin.SGST,
		IGST:          fin.IGST,
		GrandTotal:    fin.GrandTotal,
	}

	// unextractable date: placeholder today, weight contributes zero
	dateConf := date.Confidence
	if date.Value.IsZero() {
		inv.InvoiceDate = time.Now().Truncate(24 * time.Hour)
		dateConf = 0
	}

	inv.Confidence = weightSupplier*supplier.Confidence +
		weightDate*dateConf +
		weightInvoiceNo*invoiceNo.Confidence +
		weightItems*itemConf +
		weightFinancial*fin.Confidence

	return inv, len(lineItems) > 0
}
