package model

import (
	"time"
)

// Invoice represents a parsed pharmaceutical purchase invoice.
type Invoice struct {
	// Unique identifier, assigned by the processor
	ID string `json:"id"`

	// Header
	SupplierName  string    `json:"supplier_name"`
	SupplierGSTIN string    `json:"supplier_gstin,omitempty"` // 15-char GSTIN, format-validated
	DrugLicense   string    `json:"drug_license,omitempty"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`

	// Line items
	Items []InvoiceItem `json:"items"`

	// Totals (INR)
	Subtotal   float64 `json:"subtotal,omitempty"`
	CGST       float64 `json:"cgst,omitempty"`
	SGST       float64 `json:"sgst,omitempty"`
	IGST       float64 `json:"igst,omitempty"`
	GrandTotal float64 `json:"grand_total,omitempty"`

	// Overall extraction quality in [0,1]
	Confidence float64 `json:"confidence"`

	// Retained for debugging, never serialized
	RawText string `json:"-"`
}

// InvoiceItem represents one drug line on an invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	HSN         string  `json:"hsn,omitempty"`
	Batch       string  `json:"batch,omitempty"`
	Expiry      string  `json:"expiry,omitempty"` // raw text; format varies by supplier
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount,omitempty"`
	TaxPercent  float64 `json:"tax_percent,omitempty"`
	TaxAmount   float64 `json:"tax_amount,omitempty"`
	Total       float64 `json:"total"`

	// Per-item extraction quality in [0,1]
	Confidence float64 `json:"confidence"`
}

// Field pairs an extracted value with a confidence heuristic in [0,1].
// A zero confidence means the value is absent or untrustworthy.
type Field[T any] struct {
	Value      T
	Confidence float64
}

// NewField builds a Field, clamping confidence to [0,1].
func NewField[T any](value T, confidence float64) Field[T] {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Field[T]{Value: value, Confidence: confidence}
}

// Validate checks the required-field contract: a usable invoice must carry
// a supplier name and an invoice number. Everything else may be empty.
func (inv *Invoice) Validate() error {
	if inv.SupplierName == "" {
		return &ValidationError{Field: "supplier_name"}
	}
	if inv.InvoiceNumber == "" {
		return &ValidationError{Field: "invoice_number"}
	}
	return nil
}
