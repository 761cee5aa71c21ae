// Package regions maps full state, province and country names to their ISO
// 3166 codes. Lookups ignore case and diacritics, so "Québec" and "QUEBEC"
// resolve alike.
package regions

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table is an immutable name-to-code lookup.
type Table struct {
	states    map[string]string
	countries map[string]string
}

// New builds a table from name-to-code maps. Names are folded on insert.
func New(states, countries map[string]string) *Table {
	t := &Table{
		states:    make(map[string]string, len(states)),
		countries: make(map[string]string, len(countries)),
	}
	for name, code := range states {
		t.states[Fold(name)] = code
	}
	for name, code := range countries {
		t.countries[Fold(name)] = code
	}
	return t
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the built-in table: US states and territories, Canadian
// provinces, and ISO 3166-1 countries.
func Default() *Table {
	defaultOnce.Do(func() {
		states := make(map[string]string, len(isoStates)+len(isoProvinces))
		for k, v := range isoStates {
			states[k] = v
		}
		for k, v := range isoProvinces {
			states[k] = v
		}
		defaultTable = New(states, isoCountries)
	})
	return defaultTable
}

// StateCode returns the code for a state or province name.
func (t *Table) StateCode(name string) (string, bool) {
	code, ok := t.states[Fold(name)]
	return code, ok
}

// CountryCode returns the ISO 3166-1 alpha-2 code for a country name.
func (t *Table) CountryCode(name string) (string, bool) {
	code, ok := t.countries[Fold(name)]
	return code, ok
}

// Fold normalizes a region name for lookup: diacritics removed, case folded,
// surrounding space trimmed and inner whitespace collapsed.
func Fold(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = strings.ToLower(name)
	}
	return strings.Join(strings.Fields(folded), " ")
}
