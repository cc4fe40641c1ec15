package fields_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/parser/fields"
)

func TestSupplier(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		minConf  float64
		maxConf  float64
	}{
		{
			name:    "company pattern in header",
			text:    "PHARMA BIO LOGICAL\nGST Invoice\n",
			want:    "PHARMA BIO LOGICAL",
			minConf: 0.9,
			maxConf: 1.0,
		},
		{
			name:    "legal suffix",
			text:    "Sharma Brothers LLP\nsome address line\n",
			want:    "Sharma Brothers LLP",
			minConf: 0.7,
			maxConf: 0.8,
		},
		{
			name:    "substantial first line fallback",
			text:    "Quality Goods And Supplies Co\nplain line\n",
			want:    "Quality Goods And Supplies Co",
			minConf: 0.25,
			maxConf: 0.35,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields.Supplier(tt.text)
			assert.Equal(t, tt.want, got.Value)
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf)
			assert.LessOrEqual(t, got.Confidence, tt.maxConf)
		})
	}
}

func TestSupplierEmpty(t *testing.T) {
	got := fields.Supplier("\n\n\n")
	assert.Empty(t, got.Value)
	assert.Zero(t, got.Confidence)
}

func TestSupplierScansHeaderOnly(t *testing.T) {
	// the company name buried past line 10 must not be found
	text := "\n\n\n\n\n\n\n\n\n\n\nSUN PHARMACEUTICAL INDUSTRIES LTD\n"
	got := fields.Supplier(text)
	assert.Empty(t, got.Value)
}

func TestGSTIN(t *testing.T) {
	got := fields.GSTIN("GSTIN : 27ABCDE1234F1Z5\n")
	assert.Equal(t, "27ABCDE1234F1Z5", got.Value)
	assert.GreaterOrEqual(t, got.Confidence, 0.9)

	shapeOnly := fields.GSTIN("code 27ABCDE1234F1X5 here")
	assert.Equal(t, "27ABCDE1234F1X5", shapeOnly.Value)
	assert.InDelta(t, 0.6, shapeOnly.Confidence, 0.001)

	missing := fields.GSTIN("no tax id on this invoice")
	assert.Empty(t, missing.Value)
	assert.Zero(t, missing.Confidence)
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		conf    float64
	}{
		{"pharma shape", "Invoice No. : PB-000561", "PB-000561", 0.9},
		{"generic label", "Bill No : 2024/0042", "2024/0042", 0.7},
		{"standalone token on invoice line", "This invoice AB123 is due on receipt", "AB123", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields.InvoiceNumber(tt.text)
			assert.Equal(t, tt.want, got.Value)
			assert.InDelta(t, tt.conf, got.Confidence, 0.001)
		})
	}
}

func TestInvoiceNumberMissing(t *testing.T) {
	got := fields.InvoiceNumber("delivery challan without a number word")
	assert.Empty(t, got.Value)
	assert.Zero(t, got.Confidence)
}

func TestInvoiceDateCorpus(t *testing.T) {
	// every supported date shape must parse with confidence > 0.5
	corpus := map[string]time.Time{
		"Date : 01-02-2024":        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"Date : 01/02/2024":        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"Dated 2024-02-01":         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"Invoice date 15 Mar 2024": time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"Issued 5 March 2024":      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for text, want := range corpus {
		t.Run(text, func(t *testing.T) {
			got := fields.InvoiceDate(text)
			require.False(t, got.Value.IsZero(), "should parse a date")
			assert.True(t, got.Value.Equal(want), "got %v want %v", got.Value, want)
			assert.Greater(t, got.Confidence, 0.5)
		})
	}
}

func TestInvoiceDateUnparseable(t *testing.T) {
	got := fields.InvoiceDate("no date anywhere 99/99/9999")
	assert.True(t, got.Value.IsZero())
	assert.Zero(t, got.Confidence)
}

func TestDrugLicense(t *testing.T) {
	got := fields.DrugLicense("D.L. No : 20B-123456 issued by FDA")
	assert.NotEmpty(t, got.Value)
	assert.Greater(t, got.Confidence, 0.5)
}
