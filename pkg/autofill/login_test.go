package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFillScript_BasicLogin(t *testing.T) {
	p := page(
		inForm(withName(textField("u1", 0), "username"), "f1"),
		inForm(passwordField("p1", 1), "f1"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)

	assert.Equal(t, []FillOperation{
		click("u1"), focus("u1"), fill("u1", "alice"),
		click("p1"), focus("p1"), fill("p1", "secret"),
		focus("p1"),
	}, script.Script)
	assert.Equal(t, "doc-1", script.DocumentUUID)
	assert.Equal(t, DefaultDelayBetweenOperations, script.Properties.DelayBetweenOperations)
}

func TestGenerateFillScript_NilInputs(t *testing.T) {
	p := page(passwordField("p1", 0))

	tests := []struct {
		name string
		page *PageDetails
		opts Options
	}{
		{"nil page", nil, Options{Cipher: loginCipher("a", "b")}},
		{"nil cipher", p, Options{}},
		{"cipher without item", p, Options{Cipher: &Cipher{}}},
		{"typed nil item", p, Options{Cipher: &Cipher{Item: (*Login)(nil)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, GenerateFillScript(tt.page, tt.opts))
		})
	}
}

func TestFindUsernameField_ExactMatchPrecedence(t *testing.T) {
	p := page(
		inForm(withName(textField("exact", 0), "email"), "f1"),
		inForm(withName(textField("closer", 1), "useremailfield"), "f1"),
		inForm(passwordField("p1", 2), "f1"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)

	got := fills(script)
	assert.Equal(t, "alice", got["exact"])
	assert.NotContains(t, got, "closer")
}

func TestFindUsernameField_ClosestWithoutExactMatch(t *testing.T) {
	p := page(
		inForm(withName(textField("far", 0), "foo"), "f1"),
		inForm(withName(textField("near", 1), "bar"), "f1"),
		inForm(passwordField("p1", 2), "f1"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)

	got := fills(script)
	assert.Equal(t, "alice", got["near"])
	assert.NotContains(t, got, "far")
}

func TestGenerateFillScript_UsernameBeforePassword(t *testing.T) {
	p := page(
		inForm(withName(textField("u1", 0), "login"), "a"),
		inForm(passwordField("p1", 1), "a"),
		inForm(withName(textField("u2", 2), "login"), "b"),
		inForm(passwordField("p2", 3), "b"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)

	lastUsername, firstPassword := -1, len(script.Script)
	for i, op := range script.Script {
		if op.Action != ActionFill {
			continue
		}
		switch op.Value {
		case "alice":
			lastUsername = i
		case "secret":
			if i < firstPassword {
				firstPassword = i
			}
		}
	}
	assert.Less(t, lastUsername, firstPassword)
	assert.Equal(t, 4, script.FillCount())
	assert.Equal(t, focus("p2"), script.Script[len(script.Script)-1])
}

func TestGenerateFillScript_PasswordOutsideForm(t *testing.T) {
	p := page(
		withID(textField("u1", 0), "user"),
		passwordField("p1", 1),
		passwordField("p2", 2),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)

	assert.Equal(t, map[string]string{"u1": "alice", "p1": "secret"}, fills(script))
}

func TestGenerateFillScript_UsernameOnlyFill(t *testing.T) {
	p := page(
		withID(textField("search", 0), "q"),
		withID(textField("e1", 1), "email"),
		withID(textField("e2", 2), "email-confirm"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "")})
	require.NotNil(t, script)

	assert.Equal(t, 1, script.FillCount())
	assert.Equal(t, map[string]string{"e1": "alice"}, fills(script))

	skipped := GenerateFillScript(p, Options{Cipher: loginCipher("alice", ""), SkipUsernameOnlyFill: true})
	require.NotNil(t, skipped)
	assert.Empty(t, skipped.Script)
}

func TestGenerateFillScript_EmptyPasswordWithPasswordField(t *testing.T) {
	p := page(
		inForm(withName(textField("u1", 0), "username"), "f1"),
		inForm(passwordField("p1", 1), "f1"),
	)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "")})
	require.NotNil(t, script)
	assert.Empty(t, script.Script)
}

func TestGenerateFillScript_HiddenPasswordRetry(t *testing.T) {
	hidden := inForm(passwordField("p1", 1), "f1")
	hidden.Viewable = false
	p := page(inForm(withName(textField("u1", 0), "username"), "f1"), hidden)

	script := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret")})
	require.NotNil(t, script)
	assert.Equal(t, map[string]string{"u1": "alice", "p1": "secret"}, fills(script))
	// The hidden password field is not focused.
	assert.Equal(t, focus("u1"), script.Script[len(script.Script)-1])

	visibleOnly := GenerateFillScript(p, Options{Cipher: loginCipher("alice", "secret"), OnlyVisibleFields: true})
	require.NotNil(t, visibleOnly)
	assert.Equal(t, map[string]string{"u1": "alice"}, fills(visibleOnly))
}

func TestGenerateFillScript_PasswordFieldFilters(t *testing.T) {
	newPassword := inForm(passwordField("p1", 1), "f1")
	newPassword.AutoCompleteType = "new-password"
	prefilled := inForm(passwordField("p2", 2), "f1")
	prefilled.Value = "old"
	hint := inForm(withID(textField("hint", 3), "password-hint"), "f1")
	likePassword := inForm(withName(textField("lp", 4), "Password"), "f2")
	p := page(newPassword, prefilled, hint, likePassword)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"defaults", Options{}, []string{"p2", "lp"}},
		{"fill new password", Options{FillNewPassword: true}, []string{"p1", "p2", "lp"}},
		{"only empty", Options{OnlyEmptyFields: true}, []string{"lp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newScriptBuilder(p, tt.opts, defaultRegions(), nopLogger{})
			got := loadPasswordFields(b.fields, passwordQuery{
				mustBeEmpty:     tt.opts.OnlyEmptyFields,
				fillNewPassword: tt.opts.FillNewPassword,
			})
			var opids []string
			for _, f := range got {
				opids = append(opids, f.OPID)
			}
			assert.Equal(t, tt.want, opids)
		})
	}
}

func TestGenerateFillScript_UntrustedIframe(t *testing.T) {
	cipher := &Cipher{Item: &Login{
		Username: "alice",
		Password: "secret",
		URIs: []LoginURI{
			{URI: "https://bank.example/login"},
			{URI: "https://ignored.example", Match: URIMatchNever},
		},
	}}

	tests := []struct {
		name    string
		pageURL string
		tabURL  string
		want    bool
	}{
		{"same page as tab", "https://bank.example/login", "https://bank.example/login", false},
		{"no tab url", "https://evil.example", "", false},
		{"frame on saved host", "https://bank.example/frame", "https://portal.example", false},
		{"frame on foreign host", "https://evil.example/frame", "https://bank.example", true},
		{"never-match uri does not vouch", "https://ignored.example/frame", "https://bank.example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := page(passwordField("p1", 0))
			p.URL = tt.pageURL

			script := GenerateFillScript(p, Options{Cipher: cipher, TabURL: tt.tabURL})
			require.NotNil(t, script)
			assert.Equal(t, tt.want, script.UntrustedIframe)
			assert.Equal(t, []string{"https://bank.example/login"}, script.SavedURLs)
		})
	}
}

func TestGenerateFillScript_DuplicateOPIDs(t *testing.T) {
	log := &recordingLogger{}
	p := page(
		inForm(withName(textField("u1", 0), "username"), "f1"),
		inForm(withName(textField("u1", 1), "other"), "f1"),
		inForm(passwordField("p1", 2), "f1"),
	)

	script := generateFillScript(p, Options{Cipher: loginCipher("alice", "secret")}, defaultRegions(), log)
	require.NotNil(t, script)

	assert.Equal(t, map[string]string{"u1": "alice", "p1": "secret"}, fills(script))
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], `"u1"`)
}

func TestGenerateFillScript_Deterministic(t *testing.T) {
	p := page(
		inForm(withName(textField("u1", 0), "username"), "b"),
		inForm(passwordField("p1", 1), "b"),
		inForm(withName(textField("u2", 2), "email"), "a"),
		inForm(passwordField("p2", 3), "a"),
	)
	opts := Options{Cipher: loginCipher("alice", "secret")}

	first := GenerateFillScript(p, opts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GenerateFillScript(p, opts))
	}
}

func TestGenerateFillScript_NoDoubleFill(t *testing.T) {
	p := page(
		inForm(withName(textField("u1", 0), "username"), "f1"),
		inForm(passwordField("p1", 1), "f1"),
	)
	cipher := loginCipher("alice", "secret")
	cipher.Fields = []CustomField{{Name: "username", Value: strPtr("custom")}}

	script := GenerateFillScript(p, Options{Cipher: cipher})
	require.NotNil(t, script)

	seen := map[string]int{}
	for _, op := range script.Script {
		if op.Action == ActionFill {
			seen[op.OPID]++
		}
	}
	assert.Equal(t, map[string]int{"u1": 1, "p1": 1}, seen)
	assert.Equal(t, "custom", fills(script)["u1"])
}

func TestGenerateFillScript_DelayOverride(t *testing.T) {
	p := page(passwordField("p1", 0))
	script := GenerateFillScript(p, Options{Cipher: loginCipher("", "secret"), DelayBetweenOperations: 75})
	require.NotNil(t, script)
	assert.Equal(t, 75, script.Properties.DelayBetweenOperations)
}
