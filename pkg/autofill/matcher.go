package autofill

import (
	"strings"
)

// passwordQuery selects which password fields loadPasswordFields returns.
type passwordQuery struct {
	canBeHidden     bool
	canBeReadOnly   bool
	mustBeEmpty     bool
	fillNewPassword bool
}

// loadPasswordFields returns password fields, and text fields that look like
// password fields, in page order.
func loadPasswordFields(fields []*PageField, q passwordQuery) []*PageField {
	var result []*PageField
	for _, f := range fields {
		if f.isCustomFieldOnly() || f.Disabled {
			continue
		}
		if f.Readonly && !q.canBeReadOnly {
			continue
		}
		if f.Type != FieldTypePassword && !isLikePassword(f) {
			continue
		}
		if !f.Viewable && !q.canBeHidden {
			continue
		}
		if q.mustBeEmpty && strings.TrimSpace(f.Value) != "" {
			continue
		}
		if !q.fillNewPassword && f.AutoCompleteType == autocompleteNewPassword {
			continue
		}
		result = append(result, f)
	}
	return result
}

// isLikePassword reports whether a text field's id, name or placeholder
// mentions "password".
func isLikePassword(f *PageField) bool {
	if f.Type != FieldTypeText {
		return false
	}
	return valueIsLikePassword(f.HTMLID) ||
		valueIsLikePassword(f.HTMLName) ||
		valueIsLikePassword(f.Placeholder)
}

func valueIsLikePassword(value string) bool {
	if value == "" {
		return false
	}
	cleaned := strings.ToLower(stripWhitespaceAndSeparators(value))
	if !strings.Contains(cleaned, "password") {
		return false
	}
	for _, ignored := range PasswordFieldExcludeList {
		if strings.Contains(cleaned, ignored) {
			return false
		}
	}
	return true
}

// usernameQuery selects which fields findUsernameField considers.
type usernameQuery struct {
	canBeHidden   bool
	canBeReadOnly bool
	withoutForm   bool
}

// findUsernameField returns the text field closest before the password field,
// unless an earlier candidate matches a username name exactly.
func findUsernameField(fields []*PageField, password *PageField, q usernameQuery) *PageField {
	var candidate *PageField
	for _, f := range fields {
		if f.isCustomFieldOnly() {
			continue
		}
		if f.ElementNumber >= password.ElementNumber {
			break
		}
		if f.Disabled || (f.Readonly && !q.canBeReadOnly) {
			continue
		}
		if !q.withoutForm && f.Form != password.Form {
			continue
		}
		if !f.Viewable && !q.canBeHidden {
			continue
		}
		if !f.isTextLike() {
			continue
		}

		candidate = f
		if usernameDirectives.findMatchingFieldIndex(f) > -1 {
			break
		}
	}
	return candidate
}

// fieldIsFuzzyMatch reports whether any descriptive attribute contains one of names.
func fieldIsFuzzyMatch(f *PageField, names []string) bool {
	for _, v := range []string{
		f.HTMLID, f.HTMLName, f.LabelTag, f.Placeholder, f.LabelLeft, f.LabelTop, f.LabelAria,
	} {
		if fuzzyMatch(names, v) {
			return true
		}
	}
	return false
}

func isExcludedType(fieldType string) bool {
	for _, t := range ExcludedAutofillTypes {
		if fieldType == t {
			return true
		}
	}
	return false
}

// assignSlots gives each slot the first field whose attributes match the
// slot's names. Fields are visited in page order and attributes in slotAttrs
// order; for each attribute value the first unclaimed matching slot wins and
// the field is not considered for any other slot.
func assignSlots(fields []*PageField, filled *filledSet, slotNames []nameSet) []*PageField {
	slots := make([]*PageField, len(slotNames))
	for _, f := range fields {
		if f.isCustomFieldOnly() || isExcludedType(f.Type) || !f.Viewable || filled.has(f.OPID) {
			continue
		}

	attrs:
		for _, a := range slotAttrs {
			value := f.attr(a)
			if value == "" {
				continue
			}
			for i, names := range slotNames {
				if slots[i] == nil && names.isFieldMatch(value) {
					slots[i] = f
					break attrs
				}
			}
		}
	}
	return slots
}

// findSelectOption returns the option whose value or text equals value, ignoring case.
func findSelectOption(options []SelectOption, value string) (SelectOption, bool) {
	for _, o := range options {
		if (o.Value != "" && strings.EqualFold(o.Value, value)) ||
			(o.Text != "" && strings.EqualFold(o.Text, value)) {
			return o, true
		}
	}
	return SelectOption{}, false
}

// uniqueFields returns pointers to the page's fields with duplicate opids
// removed; the first occurrence wins.
func uniqueFields(fields []PageField) (unique []*PageField, duplicates []string) {
	seen := make(map[string]bool, len(fields))
	unique = make([]*PageField, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		if seen[f.OPID] {
			duplicates = append(duplicates, f.OPID)
			continue
		}
		seen[f.OPID] = true
		unique = append(unique, f)
	}
	return unique, duplicates
}
