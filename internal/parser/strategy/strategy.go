// Package strategy holds the parser strategies and their registry. A
// strategy is a stateless unit that turns raw text plus tables into a
// typed invoice; the registry ranks strategies for a given document.
//
// Strategies are registered explicitly at construction, never discovered
// dynamically.
package strategy

import (
	"sort"
	"strings"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/fuzzy"
	"github.com/vikasgargbear/pharma-backend-sub001/internal/model"
)

// fuzzyThreshold is the partial-ratio score above which a single keyword
// counts as a match even when exact containment fails (OCR noise).
const fuzzyThreshold = 80

// Strategy is a parser strategy. Implementations hold no per-call state
// and are safe to share across concurrent parses.
type Strategy interface {
	// Name identifies the strategy in results and logs.
	Name() string
	// Keywords gate CanParse: ALL must appear for an exact match.
	Keywords() []string
	// Priority orders eligible strategies; higher is tried first.
	Priority() int
	// CanParse reports whether every keyword occurs in text,
	// case-insensitively.
	CanParse(text string) bool
	// Parse produces an invoice from raw text and detected tables.
	Parse(text string, tables [][][]string) (*model.Invoice, error)
}

// Registry holds the strategy set.
type Registry struct {
	strategies []Strategy
}

// NewRegistry builds a registry over an explicit strategy list.
func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{strategies: strategies}
}

// DefaultRegistry returns the production strategy set: the known supplier
// strategies plus the generic strategy, which matches unconditionally at
// the lowest priority.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&pharmaBiologicalStrategy{},
		&medplusWholesaleStrategy{},
		&genericStrategy{},
	)
}

// Select returns the strategies eligible for text, ordered by descending
// priority with name as a stable tiebreak. A strategy is eligible when
// CanParse is true or any single keyword is fuzzy-similar to the text. The
// generic strategy guarantees at least one candidate.
func (r *Registry) Select(text string) []Strategy {
	var eligible []Strategy
	for _, s := range r.strategies {
		if s.CanParse(text) || fuzzyEligible(s, text) {
			eligible = append(eligible, s)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Priority() != eligible[j].Priority() {
			return eligible[i].Priority() > eligible[j].Priority()
		}
		return eligible[i].Name() < eligible[j].Name()
	})
	return eligible
}

// Strategies returns the full registered set in registration order.
func (r *Registry) Strategies() []Strategy {
	return r.strategies
}

func fuzzyEligible(s Strategy, text string) bool {
	for _, kw := range s.Keywords() {
		if fuzzy.PartialRatio(kw, text) > fuzzyThreshold {
			return true
		}
	}
	return false
}

// keywordsMatch implements the exact CanParse gate shared by strategies.
func keywordsMatch(keywords []string, text string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
