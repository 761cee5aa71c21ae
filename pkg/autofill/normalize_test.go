package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFieldValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Card-Number ", "cardnumber"},
		{"cc_exp_month", "ccexpmonth"},
		{"E-Mail Adresse", "emailadresse"},
		{"Straße", "strae"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeFieldValue(tt.in), tt.in)
	}
}

func TestNameSetIsFieldMatch(t *testing.T) {
	set := exactOrContains([]string{"name", "full-name"}, []string{"full-name"})

	assert.True(t, set.isFieldMatch("Name"))
	assert.True(t, set.isFieldMatch("customer_full_name"))
	assert.False(t, set.isFieldMatch("username"))
	assert.False(t, set.isFieldMatch(""))

	loose := anyContains([]string{"cvv"})
	assert.True(t, loose.isFieldMatch("card-cvv-code"))
}

func TestYearAndMonthHelpers(t *testing.T) {
	assert.Equal(t, "03", padMonth("3"))
	assert.Equal(t, "12", padMonth("12"))
	assert.Equal(t, "07", fullMonth("7"))
	assert.Equal(t, "11", fullMonth("11"))
	assert.Equal(t, "2025", expandYear("25"))
	assert.Equal(t, "2025", expandYear("2025"))
	assert.Equal(t, "25", shortYear("2025"))
	assert.Equal(t, "25", shortYear("25"))
}

func TestIsLikePassword(t *testing.T) {
	tests := []struct {
		field PageField
		want  bool
	}{
		{PageField{Type: FieldTypeText, HTMLID: "user_password"}, true},
		{PageField{Type: FieldTypeText, Placeholder: "Pass word"}, true},
		{PageField{Type: FieldTypeText, HTMLName: "password-hint"}, false},
		{PageField{Type: FieldTypeText, HTMLID: "forgot-password"}, false},
		{PageField{Type: FieldTypeText, HTMLID: "one-time-password"}, false},
		{PageField{Type: FieldTypeEmail, HTMLID: "password"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isLikePassword(&tt.field), "%+v", tt.field)
	}
}
