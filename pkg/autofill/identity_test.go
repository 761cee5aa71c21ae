package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityCipher(id *Identity) *Cipher {
	return &Cipher{ID: "identity", Name: "me", Item: id}
}

func TestFillIdentity_Names(t *testing.T) {
	p := page(
		withID(textField("first", 0), "firstName"),
		withID(textField("last", 1), "lastName"),
		withID(textField("mail", 2), "email"),
		withID(textField("phone", 3), "phone"),
		withID(textField("company", 4), "organization"),
	)
	id := &Identity{FirstName: "Alice", LastName: "Doe", Email: "alice@example.com", Phone: "555-0100"}

	script := GenerateFillScript(p, Options{Cipher: identityCipher(id)})
	require.NotNil(t, script)

	assert.Equal(t, map[string]string{
		"first": "Alice",
		"last":  "Doe",
		"mail":  "alice@example.com",
		"phone": "555-0100",
	}, fills(script))
}

func TestFillIdentity_FullName(t *testing.T) {
	tests := []struct {
		name string
		id   *Identity
		want string
		ok   bool
	}{
		{"first middle last", &Identity{FirstName: "Alice", MiddleName: "B", LastName: "Doe"}, "Alice B Doe", true},
		{"last only", &Identity{LastName: "Doe"}, "Doe", true},
		{"middle only is not enough", &Identity{MiddleName: "B"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := GenerateFillScript(page(withID(textField("n", 0), "full-name")), Options{Cipher: identityCipher(tt.id)})
			require.NotNil(t, script)
			got, ok := fills(script)["n"]
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillIdentity_CompositeAddress(t *testing.T) {
	p := page(withID(textField("addr", 0), "address"))
	id := &Identity{Address1: "123 Main St", Address2: "Apt 1"}

	script := GenerateFillScript(p, Options{Cipher: identityCipher(id)})
	require.NotNil(t, script)
	assert.Equal(t, map[string]string{"addr": "123 Main St, Apt 1"}, fills(script))
}

func TestFillIdentity_AddressLines(t *testing.T) {
	p := page(
		withID(textField("a1", 0), "address-line-1"),
		withID(textField("a2", 1), "address-line-2"),
		withID(textField("zip", 2), "postal-code"),
		withID(textField("city", 3), "city"),
	)
	id := &Identity{Address1: "123 Main St", Address2: "Apt 1", PostalCode: "10001", City: "New York"}

	script := GenerateFillScript(p, Options{Cipher: identityCipher(id)})
	require.NotNil(t, script)
	assert.Equal(t, map[string]string{
		"a1":   "123 Main St",
		"a2":   "Apt 1",
		"zip":  "10001",
		"city": "New York",
	}, fills(script))
}

func TestFillIdentity_Regions(t *testing.T) {
	countries := []SelectOption{{"US", "United States"}, {"CA", "Canada"}}

	tests := []struct {
		name  string
		field PageField
		id    *Identity
		want  string
		ok    bool
	}{
		{"country select by name", withID(selectField("f", 0, countries...), "country"), &Identity{Country: "Canada"}, "CA", true},
		{"country select by code", withID(selectField("f", 0, countries...), "country"), &Identity{Country: "us"}, "US", true},
		{"country select without option", withID(selectField("f", 0, countries...), "country"), &Identity{Country: "France"}, "", false},
		{"country select with no options", withID(selectField("f", 0), "country"), &Identity{Country: "Narnia"}, "", false},
		{"country select without select info", withID(PageField{OPID: "f", Viewable: true, TagName: "select", Type: FieldTypeSelectOne}, "country"), &Identity{Country: "Canada"}, "", false},
		{"state text gets code", withID(textField("f", 0), "state"), &Identity{State: "New York"}, "NY", true},
		{"province with accent", withID(textField("f", 0), "province"), &Identity{State: "Québec"}, "QC", true},
		{"unknown state kept", withID(textField("f", 0), "state"), &Identity{State: "Bavaria"}, "Bavaria", true},
		{"state select falls back to name", withID(selectField("f", 0, SelectOption{"", "Select"}, SelectOption{"tx-1", "Texas"}), "state"), &Identity{State: "Texas"}, "tx-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := GenerateFillScript(page(tt.field), Options{Cipher: identityCipher(tt.id)})
			require.NotNil(t, script)
			got, ok := fills(script)["f"]
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fixedRegions map[string]string

func (r fixedRegions) StateCode(name string) (string, bool) {
	c, ok := r[name]
	return c, ok
}

func (r fixedRegions) CountryCode(name string) (string, bool) {
	c, ok := r[name]
	return c, ok
}

func TestFillIdentity_PluggableRegions(t *testing.T) {
	svc := NewService(WithRegions(fixedRegions{"Atlantis": "AT"}))
	p := page(withID(textField("f", 0), "country"))

	script := svc.GenerateFillScript(p, Options{Cipher: identityCipher(&Identity{Country: "Atlantis"})})
	require.NotNil(t, script)
	assert.Equal(t, "AT", fills(script)["f"])
}

func TestSelectOptionResolution(t *testing.T) {
	options := []SelectOption{{"US", "United States"}, {"CA", "Canada"}}

	got, ok := findSelectOption(options, "Canada")
	require.True(t, ok)
	assert.Equal(t, "CA", got.Value)

	_, ok = findSelectOption(options, "Mexico")
	assert.False(t, ok)
}

func TestAssignSlots_FirstFieldWins(t *testing.T) {
	p := page(
		withID(textField("e1", 0), "email"),
		withID(textField("e2", 1), "email"),
	)
	b := newScriptBuilder(p, Options{}, defaultRegions(), nopLogger{})

	slots := assignSlots(b.fields, b.filled, identitySlotNames[:])
	require.NotNil(t, slots[identitySlotEmail])
	assert.Equal(t, "e1", slots[identitySlotEmail].OPID)
}

func TestAssignSlots_AutocompleteBeforeID(t *testing.T) {
	f := withID(textField("f", 0), "city")
	f.AutoCompleteType = "postal-code"
	b := newScriptBuilder(page(f), Options{}, defaultRegions(), nopLogger{})

	slots := assignSlots(b.fields, b.filled, identitySlotNames[:])
	assert.Equal(t, "f", slots[identitySlotPostalCode].OPID)
	assert.Nil(t, slots[identitySlotCity])
}
