package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OperDate", "operdate"},
		{"oper_date", "operdate"},
		{"OPER-DATE", "operdate"},
		{"historyRecord", "historyrecord"},
		{"Code2A", "code2a"},
		{"NameRU", "nameru"},
		{"", ""},
		{"a b.c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"barcode", "barcod", 1},
		{"Приём", "Прием", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSuggest(t *testing.T) {
	fields := []string{"Barcode", "Internum", "Mass", "MaxMassRU", "MaxMassEN"}

	assert.Equal(t, []string{"Barcode"}, Suggest("barcod", fields, 2, 3))
	assert.Equal(t, []string{"MaxMassEN", "MaxMassRU"}, Suggest("MaxMass_E", fields, 2, 3))
	assert.Equal(t, []string{"MaxMassEN"}, Suggest("MaxMass_E", fields, 2, 1))
	assert.Empty(t, Suggest("Weight", fields, 2, 3))
}
