// Package patterns holds the versioned catalogue of regular-expression
// families used to recognize pharmaceutical invoice content: supplier
// companies, drug names, batch numbers, expiry dates, HSN codes, drug
// licenses, pack sizes, strengths, prices, tax lines, addresses, contacts
// and invoice numbers.
//
// The catalogue is compiled once at init and is read-only afterwards, so it
// is safe for concurrent use across documents.
package patterns

import "regexp"

// Version identifies the catalogue revision. Bump when pattern families change.
const Version = "2024.2"

// Category tags a family of patterns.
type Category string

const (
	CategoryCompany       Category = "company"
	CategoryDrugName      Category = "drug_name"
	CategoryBatch         Category = "batch"
	CategoryExpiry        Category = "expiry"
	CategoryHSN           Category = "hsn"
	CategoryDrugLicense   Category = "drug_license"
	CategoryPackSize      Category = "pack_size"
	CategoryStrength      Category = "strength"
	CategoryPrice         Category = "price"
	CategoryTax           Category = "tax"
	CategoryAddress       Category = "address"
	CategoryContact       Category = "contact"
	CategoryInvoiceNumber Category = "invoice_number"
)

// Categories lists every category in catalogue order.
var Categories = []Category{
	CategoryCompany,
	CategoryDrugName,
	CategoryBatch,
	CategoryExpiry,
	CategoryHSN,
	CategoryDrugLicense,
	CategoryPackSize,
	CategoryStrength,
	CategoryPrice,
	CategoryTax,
	CategoryAddress,
	CategoryContact,
	CategoryInvoiceNumber,
}

// pharmaHSNChapters are the HSN chapter prefixes under which pharmaceutical
// goods are classified (medicaments, vitamins, hormones, alkaloids,
// antibiotics).
var pharmaHSNChapters = []string{"3003", "3004", "2936", "2937", "2939", "2941"}

// sources maps each category to its raw patterns, most specific first.
// All patterns are case-insensitive except the GSTIN shape, which is
// inherently upper-case.
var sources = map[Category][]string{
	CategoryCompany: {
		// Full legal names: "SUN PHARMACEUTICAL INDUSTRIES LTD", "CIPLA LIMITED"
		`(?i)\b([A-Z][A-Za-z&.\- ]{2,50}\s+PHARMA(?:CEUTICALS?)?(?:\s+(?:PVT\.?|PRIVATE))?(?:\s+(?:LTD\.?|LIMITED))?)\b`,
		`(?i)\b([A-Z][A-Za-z&.\- ]{2,50}\s+(?:LIFESCIENCES?|LIFE\s+SCIENCES?|BIOTECH|BIO\s?LOGICALS?|HEALTHCARE|LABORATORIES|LABS|REMEDIES|FORMULATIONS|THERAPEUTICS))\b`,
		`(?i)\b([A-Z][A-Za-z&.\- ]{2,50}\s+(?:MEDICALS?|MEDICOS?|DRUG\s+(?:HOUSE|AGENCIES|DISTRIBUTORS)|DISTRIBUTORS?|AGENCIES|ENTERPRISES|TRADERS)(?:\s+(?:PVT\.?|PRIVATE))?(?:\s+(?:LTD\.?|LIMITED))?)\b`,
		`(?i)\b(M/S\.?\s+[A-Z][A-Za-z&.\- ]{2,50})\b`,
		`(?i)\b([A-Z][A-Za-z&.\- ]{2,50}\s+(?:PVT\.?\s+LTD\.?|PRIVATE\s+LIMITED))\b`,
	},
	CategoryDrugName: {
		// Generic-name suffixes common to pharmaceutical molecules
		`(?i)\b([A-Z][a-z]{2,}(?:cillin|mycin|floxacin|cycline|azole|onazole|prazole|cetirizine|tidine|dipine|sartan|pril|statin|olol|formin|gliptin|zolam|zepam|caine|dryl|phylline|vir|mab|nib))\b`,
		// Common OTC molecules
		`(?i)\b(paracetamol|acetaminophen|ibuprofen|aspirin|diclofenac|nimesulide|cetirizine|azithromycin|amoxicillin|metformin|atorvastatin|omeprazole|pantoprazole|ranitidine|domperidone|ondansetron|dexamethasone|prednisolone|salbutamol|montelukast)\b`,
		// Name followed by a strength: "Dolo 650mg", "Crocin 500 MG"
		`(?i)\b([A-Z][A-Za-z\-]{2,20}[ -]\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|iu))\b`,
		// Name followed by a dosage form
		`(?i)\b([A-Z][A-Za-z\-]{2,20}\s+(?:tab(?:let)?s?|cap(?:sule)?s?|syrup|suspension|injection|inj\.?|ointment|cream|gel|drops?|lotion|spray|sachet))\b`,
	},
	CategoryBatch: {
		`(?i)(?:batch|lot|b\.?\s?no)\s*(?:no\.?)?\s*[:#-]?\s*([A-Z0-9][A-Z0-9\-/]{2,14})`,
		`(?i)\bbt?ch\s*[:#-]?\s*([A-Z0-9][A-Z0-9\-/]{2,14})`,
		// Standalone batch shapes: letter prefix + digits, e.g. "MB2401", "AX-1234"
		`\b([A-Z]{1,4}-?\d{3,8}[A-Z]?)\b`,
	},
	CategoryExpiry: {
		`(?i)(?:exp(?:iry)?\.?\s*(?:date|dt)?\.?)\s*[:.-]?\s*((?:0[1-9]|1[0-2])[-/](?:20)?\d{2})`,
		`(?i)(?:exp(?:iry)?\.?\s*(?:date|dt)?\.?)\s*[:.-]?\s*([A-Za-z]{3}[-/ ](?:20)?\d{2})`,
		// Bare MM/YY or MM/YYYY in expiry columns
		`\b((?:0[1-9]|1[0-2])/(?:2\d|20\d{2}))\b`,
		`\b((?:0[1-9]|1[0-2])-(?:2\d|20\d{2}))\b`,
	},
	CategoryHSN: {
		// Pharma chapters with optional subheading digits
		`\b((?:3003|3004|2936|2937|2939|2941)\d{0,4})\b`,
		`(?i)hsn\s*(?:code)?\s*[:.-]?\s*(\d{4,8})`,
		`\b(\d{8})\b`,
	},
	CategoryDrugLicense: {
		`(?i)(?:d\.?\s?l\.?|drug\s*lic(?:en[cs]e)?)\s*(?:no\.?|number)?\s*[:.-]?\s*([A-Z0-9][A-Z0-9/.\-]{4,24})`,
		`(?i)(?:licen[cs]e|lic)\s*(?:no\.?|number)?\s*[:.-]?\s*(2[01][A-Z]?[-/][A-Z0-9/.\-]{3,20})`,
		// Form 20B/21B shapes: "20B-123456", "MH-MUM-123456"
		`\b(2[01]-?[BC][-/][A-Z0-9/\-]{3,18})\b`,
		`\b([A-Z]{2}-[A-Z]{2,4}-\d{4,10})\b`,
	},
	CategoryPackSize: {
		`(?i)\b(\d{1,3}\s*[xX*]\s*\d{1,4})\b`,
		`(?i)\b(\d{1,4}\s*(?:'s|s pack|tab(?:let)?s?|cap(?:sule)?s?|strips?|vials?|amp(?:oule)?s?|units?))\b`,
		`(?i)\b(\d{1,4}\s*(?:ml|gm|g|kg|ltr|l)\b(?:\s*(?:bottle|jar|tube|pack))?)`,
	},
	CategoryStrength: {
		`(?i)\b(\d+(?:\.\d+)?\s*(?:mg|mcg|µg|g|gm|ml|iu|%(?:\s*w/[vw])?))\b`,
		`(?i)\b(\d+(?:\.\d+)?\s*(?:mg|mcg)\s*/\s*(?:ml|5\s*ml|tab(?:let)?|dose))\b`,
	},
	CategoryPrice: {
		`(?i)(?:rs\.?|inr|₹)\s*([0-9]{1,3}(?:,[0-9]{2,3})*(?:\.[0-9]{1,2})?)`,
		`(?i)(?:m\.?r\.?p\.?|rate|amount|total)\s*[:.-]?\s*(?:rs\.?|inr|₹)?\s*([0-9]{1,3}(?:,[0-9]{2,3})*(?:\.[0-9]{1,2})?)`,
		`\b([0-9]{1,3}(?:,[0-9]{2,3})+\.[0-9]{2})\b`,
		`\b([0-9]+\.[0-9]{2})\b`,
	},
	CategoryTax: {
		`(?i)\bc\.?g\.?s\.?t\.?\s*(?:@?\s*[\d.]+\s*%)?\s*[:.-]?\s*(?:rs\.?|inr|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`,
		`(?i)\bs\.?g\.?s\.?t\.?\s*(?:@?\s*[\d.]+\s*%)?\s*[:.-]?\s*(?:rs\.?|inr|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`,
		`(?i)\bi\.?g\.?s\.?t\.?\s*(?:@?\s*[\d.]+\s*%)?\s*[:.-]?\s*(?:rs\.?|inr|₹)?\s*([0-9,]+(?:\.[0-9]{1,2})?)`,
		`(?i)\bgst\s*@?\s*(\d+(?:\.\d+)?)\s*%`,
	},
	CategoryAddress: {
		// Indian PIN codes
		`\b([1-9][0-9]{5})\b`,
		`(?i)\b((?:plot|shop|gala|flat|office)\s*no\.?\s*[A-Z0-9/\-]+)\b`,
		`(?i)\b([A-Za-z ]+(?:road|street|marg|nagar|chowk|market|complex|estate|industrial area|floor|building|bhavan))\b`,
	},
	CategoryContact: {
		// Indian mobile numbers
		`\b([6-9]\d{9})\b`,
		`(?i)(?:ph|tel|phone|mob(?:ile)?)\s*\.?\s*(?:no\.?)?\s*[:.-]?\s*(\+?[0-9][0-9 \-]{8,14})`,
		`\b([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})\b`,
	},
	CategoryInvoiceNumber: {
		// Pharma distributor shapes: "PB-000561", "INV/2024/00123"
		`(?i)(?:invoice|bill|inv)\s*(?:no|num|number|#)?\s*\.?\s*[:.-]\s*([A-Z]{1,5}[-/]?\d{3,10})`,
		`(?i)(?:invoice|bill|inv)\s*(?:no|num|number|#)?\s*\.?\s*[:.-]\s*([A-Z0-9][A-Z0-9/\-]{2,19})`,
		`(?i)(?:invoice|bill)\s*(?:no|num|number|#)\s*\.?\s*:?\s*([A-Za-z0-9/\-]{3,20})`,
	},
}

// GSTIN matches the general 15-character shape of India's GST
// identification number: 2-digit state code followed by 13 upper-case
// alphanumerics. Deliberately case-sensitive.
var GSTIN = regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9A-Z]{8}\b`)

// gstinStrict pins the full positional substructure: state code 01-38,
// 5 letters (PAN holder), 4 digits, 1 letter, entity code, literal Z,
// check character.
var gstinStrict = regexp.MustCompile(`^[0-3][0-9][A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// compiled holds the catalogue, built once at init.
var compiled = func() map[Category][]*regexp.Regexp {
	m := make(map[Category][]*regexp.Regexp, len(sources))
	for cat, exprs := range sources {
		res := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			res = append(res, regexp.MustCompile(expr))
		}
		m[cat] = res
	}
	return m
}()

// Patterns returns the compiled patterns for a category, most specific
// first. The returned slice must not be mutated.
func Patterns(cat Category) []*regexp.Regexp {
	return compiled[cat]
}

// Count returns the total number of patterns in the catalogue, including
// the GSTIN shape. Used by health checks.
func Count() int {
	n := 1 // GSTIN
	for _, res := range compiled {
		n += len(res)
	}
	return n
}
