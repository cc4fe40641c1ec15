package strategy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
)

// Supplier-specific strategies layer small layout corrections over the
// generic stack. They fail loudly ("not my layout") when their anchor
// assumptions do not hold, so the orchestrator falls through to the next
// candidate.

// pharmaBiologicalStrategy handles PHARMA BIO LOGICAL invoices, whose
// invoice numbers carry a PB- prefix and whose header block always starts
// with the company name.
type pharmaBiologicalStrategy struct{}

var pbInvoiceRE = regexp.MustCompile(`\b(PB[-/]?\d{4,8})\b`)

func (*pharmaBiologicalStrategy) Name() string { return "pharma-bio-logical" }

func (*pharmaBiologicalStrategy) Keywords() []string {
	return []string{"pharma bio logical"}
}

func (*pharmaBiologicalStrategy) Priority() int { return 10 }

func (s *pharmaBiologicalStrategy) CanParse(text string) bool {
	return keywordsMatch(s.Keywords(), text)
}

func (s *pharmaBiologicalStrategy) Parse(text string, tables [][][]string) (*model.Invoice, error) {
	inv, hasItems := buildInvoice(text, tables)

	inv.SupplierName = "PHARMA BIO LOGICAL"
	if m := pbInvoiceRE.FindString(text); m != "" {
		inv.InvoiceNumber = m
	}
	if !hasItems {
		return nil, fmt.Errorf("%s: no item rows in expected layout", s.Name())
	}
	return inv, nil
}

// medplusWholesaleStrategy handles MEDPLUS WHOLESALE invoices. Their grids
// label the batch column "B.No" and print quantities with free goods as
// "N+MF"; the shared numeric coercion already truncates those correctly.
type medplusWholesaleStrategy struct{}

func (*medplusWholesaleStrategy) Name() string { return "medplus-wholesale" }

func (*medplusWholesaleStrategy) Keywords() []string {
	return []string{"medplus", "wholesale"}
}

func (*medplusWholesaleStrategy) Priority() int { return 10 }

func (s *medplusWholesaleStrategy) CanParse(text string) bool {
	return keywordsMatch(s.Keywords(), text)
}

func (s *medplusWholesaleStrategy) Parse(text string, tables [][][]string) (*model.Invoice, error) {
	inv, hasItems := buildInvoice(text, tables)

	if !strings.Contains(strings.ToLower(inv.SupplierName), "medplus") {
		inv.SupplierName = "MEDPLUS WHOLESALE"
	}
	if !hasItems {
		return nil, fmt.Errorf("%s: no item rows in expected layout", s.Name())
	}
	return inv, nil
}
