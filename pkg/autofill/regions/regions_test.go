package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Québec", "quebec"},
		{"  New   York ", "new york"},
		{"CÔTE D'IVOIRE", "cote d'ivoire"},
		{"São Tomé and Príncipe", "sao tome and principe"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestDefaultTable(t *testing.T) {
	table := Default()

	tests := []struct {
		name   string
		lookup func(string) (string, bool)
		in     string
		want   string
		ok     bool
	}{
		{"us state", table.StateCode, "California", "CA", true},
		{"district", table.StateCode, "district of columbia", "DC", true},
		{"canadian province", table.StateCode, "QUÉBEC", "QC", true},
		{"unknown state", table.StateCode, "Bavaria", "", false},
		{"country", table.CountryCode, "Germany", "DE", true},
		{"country with accent", table.CountryCode, "Côte d'Ivoire", "CI", true},
		{"country alias", table.CountryCode, "United States of America", "US", true},
		{"state is not a country", table.CountryCode, "Ontario", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lookup(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Same(t, table, Default())
}

func TestNew(t *testing.T) {
	table := New(map[string]string{"Bayern": "BY"}, map[string]string{"Deutschland": "DE"})

	code, ok := table.StateCode("bayern")
	assert.True(t, ok)
	assert.Equal(t, "BY", code)

	code, ok = table.CountryCode("DEUTSCHLAND")
	assert.True(t, ok)
	assert.Equal(t, "DE", code)
}
