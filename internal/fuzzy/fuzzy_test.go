package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vikasgargbear/pharma-backend-sub001/internal/fuzzy"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "medplus", "medplus", 100},
		{"both empty", "", "", 100},
		{"disjoint", "abc", "xyz", 0},
		{"one edit", "kitten", "sitten", 83},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fuzzy.Ratio(tt.a, tt.b))
		})
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		atLeast int
	}{
		{"substring scores 100", "medplus", "MEDPLUS WHOLESALE PVT LTD", 100},
		{"case insensitive", "Pharma Bio", "pharma bio logical", 100},
		{"ocr noise stays above threshold", "medplus", "MEDPLU5 WHOLESALE", 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fuzzy.PartialRatio(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.atLeast)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestPartialRatioEmpty(t *testing.T) {
	assert.Equal(t, 0, fuzzy.PartialRatio("", "anything"))
	assert.Equal(t, 100, fuzzy.PartialRatio("", ""))
}

func TestPartialRatioSymmetric(t *testing.T) {
	a, b := "sun pharma", "SUN PHARMACEUTICAL INDUSTRIES LTD"
	assert.Equal(t, fuzzy.PartialRatio(a, b), fuzzy.PartialRatio(b, a))
}
