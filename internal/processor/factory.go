package processor

import (
	"context"

	"go.uber.org/zap"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/patterns"
)

// unknownValue substitutes missing required fields on the lenient path.
const unknownValue = "UNKNOWN"

// ExtractedData is the flattened invoice shape the REST layer persists.
type ExtractedData struct {
	SupplierName  string              `json:"supplier_name"`
	SupplierGSTIN string              `json:"supplier_gstin"`
	DrugLicense   string              `json:"drug_license"`
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   string              `json:"invoice_date"`
	Items         []model.InvoiceItem `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	CGST          float64             `json:"cgst"`
	SGST          float64             `json:"sgst"`
	IGST          float64             `json:"igst"`
	GrandTotal    float64             `json:"grand_total"`
	Confidence    float64             `json:"confidence"`
}

// Response is the factory-level result. For a readable PDF the caller
// always receives a Response, never an error: a low Confidence, not an
// error code, is the manual-review trigger.
type Response struct {
	Success        bool          `json:"success"`
	ExtractedData  ExtractedData `json:"extracted_data"`
	ParserUsed     string        `json:"parser_used,omitempty"`
	FirstAttempted string        `json:"first_attempted,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// Factory is the lenient, best-effort entry point feeding the manual
// review queue.
type Factory struct {
	pipeline *Pipeline
	log      *zap.Logger
}

// NewFactory wraps a pipeline. A nil pipeline gets the defaults.
func NewFactory(pipeline *Pipeline, log *zap.Logger) *Factory {
	if pipeline == nil {
		pipeline = NewPipeline()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{pipeline: pipeline, log: log}
}

// ParseInvoice parses path and returns the persistable response shape.
// With useEnhancedFallback, a supplier-specific win that produced zero
// items is retried with the generic multi-engine strategy, and the generic
// result is preferred when it does find items.
func (f *Factory) ParseInvoice(ctx context.Context, path string, useEnhancedFallback bool) Response {
	doc, err := f.pipeline.extractor.ExtractFile(ctx, path)
	if err != nil {
		f.log.Warn("extraction failed", zap.String("path", path), zap.Error(err))
		return Response{Success: false, Error: err.Error(), ExtractedData: emptySkeleton()}
	}

	res := f.pipeline.Process(doc)
	if res.Error != nil {
		return Response{Success: false, Error: res.Error.Error(), ExtractedData: emptySkeleton()}
	}

	parserUsed := res.StrategyUsed
	inv := res.Invoice

	if useEnhancedFallback && parserUsed != "generic" && len(inv.Items) == 0 {
		retry := f.pipeline.RetryGeneric(doc)
		if retry.Error == nil && len(retry.Invoice.Items) > 0 {
			f.log.Info("no-items fallback engaged",
				zap.String("first", parserUsed),
				zap.Int("items", len(retry.Invoice.Items)))
			inv = retry.Invoice
			parserUsed = retry.StrategyUsed
		}
	}

	// lenient path: substitute rather than fail on required fields
	if inv.SupplierName == "" {
		inv.SupplierName = unknownValue
		inv.Confidence *= 0.5
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = unknownValue
		inv.Confidence *= 0.5
	}

	return Response{
		Success:        true,
		ExtractedData:  flatten(inv),
		ParserUsed:     parserUsed,
		FirstAttempted: res.FirstAttempted,
	}
}

// PatternCount reports the pattern-library size for health checks.
func (f *Factory) PatternCount() int {
	return patterns.Count()
}

func flatten(inv *model.Invoice) ExtractedData {
	items := inv.Items
	if items == nil {
		items = []model.InvoiceItem{}
	}
	date := ""
	if !inv.InvoiceDate.IsZero() {
		date = inv.InvoiceDate.Format("2006-01-02")
	}
	return ExtractedData{
		SupplierName:  inv.SupplierName,
		SupplierGSTIN: inv.SupplierGSTIN,
		DrugLicense:   inv.DrugLicense,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   date,
		Items:         items,
		Subtotal:      inv.Subtotal,
		CGST:          inv.CGST,
		SGST:          inv.SGST,
		IGST:          inv.IGST,
		GrandTotal:    inv.GrandTotal,
		Confidence:    inv.Confidence,
	}
}

func emptySkeleton() ExtractedData {
	return ExtractedData{Items: []model.InvoiceItem{}}
}
