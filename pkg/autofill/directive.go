package autofill

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// regexMatchTimeout bounds a single regex= evaluation against a field value.
const regexMatchTimeout = 50 * time.Millisecond

type fieldAttr int

const (
	attrHTMLID fieldAttr = iota
	attrHTMLName
	attrLabelTag
	attrLabelAria
	attrPlaceholder
	attrLabelLeft
	attrLabelRight
	attrLabelTop
	attrAutoComplete
)

func (f *PageField) attr(a fieldAttr) string {
	switch a {
	case attrHTMLID:
		return f.HTMLID
	case attrHTMLName:
		return f.HTMLName
	case attrLabelTag:
		return f.LabelTag
	case attrLabelAria:
		return f.LabelAria
	case attrPlaceholder:
		return f.Placeholder
	case attrLabelLeft:
		return f.LabelLeft
	case attrLabelRight:
		return f.LabelRight
	case attrLabelTop:
		return f.LabelTop
	case attrAutoComplete:
		return f.AutoCompleteType
	}
	return ""
}

// identifierAttrs are compared, in order, by name directives.
var identifierAttrs = []fieldAttr{attrHTMLID, attrHTMLName, attrLabelTag, attrLabelAria, attrPlaceholder}

// directivePrefixes restrict a directive to specific attributes, e.g. "id=login".
var directivePrefixes = map[string][]fieldAttr{
	"id":          {attrHTMLID},
	"name":        {attrHTMLName},
	"label":       {attrLabelTag, attrLabelAria},
	"placeholder": {attrPlaceholder},
}

type directiveKind int

const (
	directiveLiteral directiveKind = iota
	directiveRegex
	directiveCSV
)

// directive is one parsed heuristic name. Plain names compare literally;
// "regex=" and "csv=" select the other forms, and an attribute prefix
// ("id=", "name=", "label=", "placeholder=") narrows which attributes are tested.
type directive struct {
	raw     string
	kind    directiveKind
	attrs   []fieldAttr
	literal string
	csv     []string
	re      *regexp2.Regexp

	// err is set when the directive could not be parsed; such a directive never matches.
	err error
}

// parseDirective parses a heuristic name. Prefixes and literals compare
// case-insensitively; a regex pattern keeps its case so escapes like \D survive.
func parseDirective(name string) directive {
	if i := strings.Index(name, "="); i > 0 {
		if attrs, ok := directivePrefixes[strings.ToLower(name[:i])]; ok {
			d := parseValueDirective(name[i+1:])
			d.raw = name
			d.attrs = attrs
			return d
		}
	}

	d := parseValueDirective(name)
	d.raw = name
	d.attrs = identifierAttrs
	return d
}

func parseValueDirective(s string) directive {
	switch {
	case hasPrefixFold(s, "regex="):
		pattern := s[len("regex="):]
		re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
		if err != nil {
			return directive{kind: directiveRegex, err: fmt.Errorf("invalid regex directive %q: %w", pattern, err)}
		}
		re.MatchTimeout = regexMatchTimeout
		return directive{kind: directiveRegex, re: re}

	case hasPrefixFold(s, "csv="):
		var values []string
		for _, v := range strings.Split(s[len("csv="):], ",") {
			values = append(values, strings.ToLower(strings.TrimSpace(v)))
		}
		return directive{kind: directiveCSV, csv: values}

	default:
		return directive{kind: directiveLiteral, literal: strings.ToLower(s)}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// match tests the directive against the field's attributes in order.
func (d *directive) match(f *PageField) bool {
	if d.err != nil {
		return false
	}
	for _, a := range d.attrs {
		if d.matchValue(f.attr(a)) {
			return true
		}
	}
	return false
}

func (d *directive) matchValue(value string) bool {
	if value == "" {
		return false
	}
	value = stripNewlines(strings.TrimSpace(value))

	switch d.kind {
	case directiveRegex:
		ok, err := d.re.MatchString(value)
		return err == nil && ok
	case directiveCSV:
		lower := strings.ToLower(value)
		for _, v := range d.csv {
			if v == lower {
				return true
			}
		}
		return false
	default:
		return strings.ToLower(value) == d.literal
	}
}

// directiveList is a priority-ordered list of parsed heuristic names.
type directiveList []directive

func parseDirectives(names []string) directiveList {
	list := make(directiveList, len(names))
	for i, n := range names {
		list[i] = parseDirective(n)
	}
	return list
}

// errors returns the parse errors of malformed directives.
func (l directiveList) errors() []error {
	var errs []error
	for _, d := range l {
		if d.err != nil {
			errs = append(errs, d.err)
		}
	}
	return errs
}

// findMatchingFieldIndex returns the index of the first directive that
// matches the field, or -1.
func (l directiveList) findMatchingFieldIndex(f *PageField) int {
	for i := range l {
		if l[i].match(f) {
			return i
		}
	}
	return -1
}
