package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectiveMatch(t *testing.T) {
	field := PageField{
		HTMLID:      "loginEmail",
		HTMLName:    "user[email]",
		LabelTag:    "E-mail address\n",
		Placeholder: "you@example.com",
	}

	tests := []struct {
		name      string
		directive string
		want      bool
	}{
		{"literal id ignores case", "LOGINEMAIL", true},
		{"literal label trims newline", "e-mail address", true},
		{"literal partial is no match", "email", false},
		{"id prefix", "id=loginemail", true},
		{"name prefix on id value", "name=loginEmail", false},
		{"label prefix", "label=E-mail Address", true},
		{"placeholder prefix", "placeholder=you@example.com", true},
		{"regex", `regex=^user\[`, true},
		{"regex ignores case", "regex=LOGIN", true},
		{"prefixed regex", "placeholder=regex=@example\\.com$", true},
		{"prefixed regex on other attribute", "id=regex=example", false},
		{"csv", "csv=foo, LoginEmail ,bar", true},
		{"csv without match", "csv=foo,bar", false},
		{"unknown prefix is literal", "data=loginEmail", false},
		{"invalid regex never matches", "regex=(", false},
		{"upper-case id prefix", "ID=loginemail", true},
		{"mixed-case placeholder prefix", "Placeholder=YOU@example.com", true},
		{"upper-case regex", "Regex=^LOGIN", true},
		{"regex escape keeps its case", `REGEX=^\D+$`, true},
		{"upper-case csv", "CSV=foo,loginemail", true},
		{"prefixed upper-case csv", "Name=Csv=x,USER[EMAIL]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseDirective(tt.directive)
			assert.Equal(t, tt.want, d.match(&field))
		})
	}
}

func TestParseDirectives_Errors(t *testing.T) {
	list := parseDirectives([]string{"username", "regex=(", "regex=[a-", "csv=a,b"})

	errs := list.errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `"("`)

	field := PageField{HTMLName: "b"}
	assert.Equal(t, 3, list.findMatchingFieldIndex(&field))
}

func TestUsernameDirectives(t *testing.T) {
	for _, name := range []string{"Username", "E-Mail", "login", "Benutzername", "customer id"} {
		field := PageField{HTMLName: name}
		assert.GreaterOrEqual(t, usernameDirectives.findMatchingFieldIndex(&field), 0, name)
	}

	field := PageField{HTMLName: "user_login_field"}
	assert.Equal(t, -1, usernameDirectives.findMatchingFieldIndex(&field))
}

func TestFillCustomFields(t *testing.T) {
	hidden := withID(textField("secret", 3), "secret-answer")
	hidden.Viewable = false
	span := PageField{OPID: "note", ElementNumber: 4, TagName: "span", HTMLID: "note"}

	p := page(
		withID(textField("pin", 0), "pin"),
		withName(textField("remember", 1), "remember"),
		withID(textField("holder", 2), "holder"),
		hidden,
		span,
	)
	cipher := &Cipher{
		Item: &Card{CardholderName: "Alice Doe", Code: "987"},
		Fields: []CustomField{
			{Name: "pin", Type: FieldTypeCustomLinked, LinkedID: LinkedCardCode},
			{Name: "name=remember", Type: FieldTypeCustomBoolean},
			{Name: "regex=^hold", Type: FieldTypeCustomLinked, LinkedID: LinkedCardCardholderName},
			{Name: "secret-answer", Value: strPtr("blue")},
			{Name: "note", Value: strPtr("memo")},
		},
	}

	script := GenerateFillScript(p, Options{Cipher: cipher})
	require.NotNil(t, script)

	assert.Equal(t, map[string]string{
		"pin":      "987",
		"remember": "false",
		"holder":   "Alice Doe",
		"note":     "memo",
	}, fills(script))

	// Span markers get the fill without click or focus.
	for _, op := range script.Script {
		if op.OPID == "note" {
			assert.Equal(t, ActionFill, op.Action)
		}
	}
}

func TestFillCustomFields_PrefixCase(t *testing.T) {
	for _, name := range []string{"ID=pin", "Regex=^pi", "CSV=pin,code"} {
		t.Run(name, func(t *testing.T) {
			p := page(withID(textField("f1", 0), "pin"))
			cipher := loginCipher("", "")
			cipher.Fields = []CustomField{{Name: name, Value: strPtr("1234")}}

			script := GenerateFillScript(p, Options{Cipher: cipher})
			require.NotNil(t, script)
			assert.Equal(t, map[string]string{"f1": "1234"}, fills(script))
		})
	}
}

func TestFillCustomFields_InvalidRegexLogged(t *testing.T) {
	log := &recordingLogger{}
	p := page(withID(textField("f", 0), "token"))
	cipher := loginCipher("", "")
	cipher.Fields = []CustomField{
		{Name: "regex=(", Value: strPtr("x")},
		{Name: "token", Value: strPtr("abc")},
	}

	script := generateFillScript(p, Options{Cipher: cipher}, defaultRegions(), log)
	require.NotNil(t, script)

	assert.Equal(t, map[string]string{"f": "abc"}, fills(script))
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], "invalid regex directive")
}

func TestCustomFieldValue(t *testing.T) {
	login := &Login{Username: "alice", Password: "secret"}

	tests := []struct {
		name  string
		field CustomField
		want  string
		ok    bool
	}{
		{"text", CustomField{Value: strPtr("v")}, "v", true},
		{"hidden", CustomField{Type: FieldTypeCustomHidden, Value: strPtr("h")}, "h", true},
		{"text without value", CustomField{}, "", true},
		{"boolean true", CustomField{Type: FieldTypeCustomBoolean, Value: strPtr("true")}, "true", true},
		{"boolean unset", CustomField{Type: FieldTypeCustomBoolean}, "false", true},
		{"linked password", CustomField{Type: FieldTypeCustomLinked, LinkedID: LinkedLoginPassword}, "secret", true},
		{"linked id of another item type", CustomField{Type: FieldTypeCustomLinked, LinkedID: LinkedCardCode}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := customFieldValue(login, tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinkedValue_Identity(t *testing.T) {
	id := &Identity{FirstName: "Alice", MiddleName: "B", LastName: "Doe", SSN: "123-45-6789"}

	got, ok := id.LinkedValue(LinkedIdentityFullName)
	require.True(t, ok)
	assert.Equal(t, "Alice B Doe", got)

	got, ok = id.LinkedValue(LinkedIdentitySSN)
	require.True(t, ok)
	assert.Equal(t, "123-45-6789", got)

	_, ok = id.LinkedValue(LinkedLoginUsername)
	assert.False(t, ok)
}
