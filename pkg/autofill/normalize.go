package autofill

import (
	"strings"
)

// normalizeFieldValue lower-cases the value and drops everything but ASCII letters and digits.
func normalizeFieldValue(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(s)
}

// stripWhitespaceAndSeparators removes whitespace, underscores and hyphens.
func stripWhitespaceAndSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v', '_', '-':
			return -1
		}
		return r
	}, s)
}

// nameSet is a heuristic name list for isFieldMatch. Names are compared
// exactly; only names in the contains set may also match as substrings.
type nameSet struct {
	names    []string
	contains []bool
}

// exactOrContains builds a nameSet where only the names listed in
// substringSafe may match as substrings.
func exactOrContains(names []string, substringSafe []string) nameSet {
	safe := make(map[string]bool, len(substringSafe))
	for _, n := range substringSafe {
		safe[n] = true
	}
	s := nameSet{names: make([]string, len(names)), contains: make([]bool, len(names))}
	for i, n := range names {
		s.names[i] = strings.ReplaceAll(strings.ToLower(n), "-", "")
		s.contains[i] = safe[n]
	}
	return s
}

// anyContains builds a nameSet where every name may match as a substring.
func anyContains(names []string) nameSet {
	return exactOrContains(names, names)
}

// isFieldMatch reports whether value matches one of the set's names.
func (s nameSet) isFieldMatch(value string) bool {
	value = normalizeFieldValue(value)
	if value == "" {
		return false
	}
	for i, name := range s.names {
		if value == name || (s.contains[i] && strings.Contains(value, name)) {
			return true
		}
	}
	return false
}

// fuzzyMatch reports whether value contains any of the names.
func fuzzyMatch(names []string, value string) bool {
	if len(names) == 0 || value == "" {
		return false
	}
	value = strings.ToLower(strings.TrimSpace(stripNewlines(value)))
	for _, n := range names {
		if strings.Contains(value, n) {
			return true
		}
	}
	return false
}

// fieldAttrsContain reports whether any descriptive attribute of the field,
// with spaces removed and lower-cased, contains s.
func fieldAttrsContain(f *PageField, s string) bool {
	if f == nil {
		return false
	}
	for _, a := range cardHintAttrs {
		v := f.attr(a)
		if v == "" {
			continue
		}
		v = strings.ToLower(strings.ReplaceAll(v, " ", ""))
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}

// padMonth zero-pads a single-digit month.
func padMonth(month string) string {
	if len(month) == 1 {
		return "0" + month
	}
	return month
}

// fullMonth returns the last two characters of the zero-padded month.
func fullMonth(month string) string {
	m := "0" + month
	return m[len(m)-2:]
}

// expandYear turns a two-digit year into a four-digit one.
func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

// shortYear turns a four-digit year into a two-digit one.
func shortYear(year string) string {
	if len(year) == 4 {
		return year[2:]
	}
	return year
}

func joinNonEmpty(sep string, parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p)
	}
	return b.String()
}
