package autofill

import (
	"sort"
)

// filledSet tracks the fields already targeted by a fill, in fill order.
// It lives for one GenerateFillScript call.
type filledSet struct {
	byOPID map[string]bool
	order  []*PageField
}

func newFilledSet() *filledSet {
	return &filledSet{byOPID: make(map[string]bool)}
}

func (s *filledSet) has(opid string) bool {
	return s.byOPID[opid]
}

func (s *filledSet) add(f *PageField) {
	if s.byOPID[f.OPID] {
		return
	}
	s.byOPID[f.OPID] = true
	s.order = append(s.order, f)
}

// scriptBuilder accumulates the operations of one script.
type scriptBuilder struct {
	page    *PageDetails
	fields  []*PageField
	opts    Options
	regions RegionLookup
	log     Logger

	script *FillScript
	filled *filledSet
}

func newScriptBuilder(page *PageDetails, opts Options, regions RegionLookup, log Logger) *scriptBuilder {
	fields, duplicates := uniqueFields(page.Fields)
	for _, opid := range duplicates {
		log.Warnf("dropping field with duplicate opid %q", opid)
	}

	delay := opts.DelayBetweenOperations
	if delay <= 0 {
		delay = DefaultDelayBetweenOperations
	}

	return &scriptBuilder{
		page:    page,
		fields:  fields,
		opts:    opts,
		regions: regions,
		log:     log,
		script: &FillScript{
			DocumentUUID: page.DocumentUUID,
			Properties:   ScriptProperties{DelayBetweenOperations: delay},
			Script:       []FillOperation{},
		},
		filled: newFilledSet(),
	}
}

// fillByOPID emits click, focus and fill for a field. Span markers only get the fill.
func (b *scriptBuilder) fillByOPID(f *PageField, value string) {
	b.filled.add(f)
	if !f.isCustomFieldOnly() {
		b.script.Script = append(b.script.Script,
			FillOperation{Action: ActionClick, OPID: f.OPID},
			FillOperation{Action: ActionFocus, OPID: f.OPID},
		)
	}
	b.script.Script = append(b.script.Script, FillOperation{Action: ActionFill, OPID: f.OPID, Value: value})
}

// fillWithValue fills value into the field unless the value is empty, the
// field is already filled, or the field is a select without a matching
// option. Select fields receive the matching option's value.
func (b *scriptBuilder) fillWithValue(f *PageField, value string) bool {
	if f == nil || value == "" || b.filled.has(f.OPID) {
		return false
	}
	if f.isSelect() {
		option, ok := findSelectOption(f.selectOptions(), value)
		if !ok {
			return false
		}
		value = option.Value
	}
	b.fillByOPID(f, value)
	return true
}

// fillEach fills value into every field not yet filled.
func (b *scriptBuilder) fillEach(fields []*PageField, value string) {
	for _, f := range fields {
		if b.filled.has(f.OPID) {
			continue
		}
		b.fillByOPID(f, value)
	}
}

// focusLastFilled focuses the last filled viewable password field, or the
// last filled viewable field when no password field was filled.
func (b *scriptBuilder) focusLastFilled() {
	var last, lastPassword *PageField
	for _, f := range b.filled.order {
		if !f.Viewable {
			continue
		}
		last = f
		if f.Type == FieldTypePassword {
			lastPassword = f
		}
	}

	target := lastPassword
	if target == nil {
		target = last
	}
	if target != nil {
		b.script.Script = append(b.script.Script, FillOperation{Action: ActionFocus, OPID: target.OPID})
	}
}

// fillCustomFields fills page fields whose id, name, label or placeholder
// equals the name of one of the cipher's custom fields.
func (b *scriptBuilder) fillCustomFields(c *Cipher) {
	var names []string
	var indexes []int
	for i, cf := range c.Fields {
		if cf.Name == "" {
			continue
		}
		names = append(names, cf.Name)
		indexes = append(indexes, i)
	}
	if len(names) == 0 {
		return
	}

	directives := parseDirectives(names)
	for _, err := range directives.errors() {
		b.log.Warnf("custom field ignored: %v", err)
	}

	for _, f := range b.fields {
		if b.filled.has(f.OPID) {
			continue
		}
		if !f.Viewable && !f.isCustomFieldOnly() {
			continue
		}
		i := directives.findMatchingFieldIndex(f)
		if i < 0 {
			continue
		}
		value, ok := customFieldValue(c.Item, c.Fields[indexes[i]])
		if !ok {
			continue
		}
		b.fillByOPID(f, value)
	}
}

// customFieldValue resolves the value a custom field fills. Linked fields
// read the named item attribute; unset booleans read as "false".
func customFieldValue(item Item, cf CustomField) (string, bool) {
	switch cf.Type {
	case FieldTypeCustomLinked:
		return item.LinkedValue(cf.LinkedID)
	case FieldTypeCustomBoolean:
		if cf.Value == nil {
			return "false", true
		}
	}
	if cf.Value == nil {
		return "", true
	}
	return *cf.Value, true
}

// formKeys returns the page's form keys in sorted order.
func formKeys(forms map[string]Form) []string {
	keys := make([]string, 0, len(forms))
	for k := range forms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GenerateFillScript builds the fill script for one page and cipher with the
// default region tables and no logging. It returns nil when the page details
// or cipher are missing, or the cipher type cannot be filled.
func GenerateFillScript(page *PageDetails, opts Options) *FillScript {
	return generateFillScript(page, opts, defaultRegions(), nopLogger{})
}

func generateFillScript(page *PageDetails, opts Options, regions RegionLookup, log Logger) *FillScript {
	if page == nil || !hasPayload(opts.Cipher) {
		return nil
	}

	b := newScriptBuilder(page, opts, regions, log)
	b.fillCustomFields(opts.Cipher)

	switch item := opts.Cipher.Item.(type) {
	case *Login:
		b.fillLogin(item)
	case *Card:
		b.fillCard(item)
	case *Identity:
		b.fillIdentity(item)
	}

	b.focusLastFilled()
	return b.script
}

// hasPayload reports whether the cipher carries a non-nil fillable item.
func hasPayload(c *Cipher) bool {
	if c == nil {
		return false
	}
	switch item := c.Item.(type) {
	case *Login:
		return item != nil
	case *Card:
		return item != nil
	case *Identity:
		return item != nil
	}
	return false
}
