package autofill

import (
	"net/url"
	"strings"
)

// fillLogin pairs password fields with the username fields that precede them.
// Usernames are filled before passwords.
func (b *scriptBuilder) fillLogin(login *Login) {
	opts := b.opts
	b.script.SavedURLs = login.SavedURLs()
	b.script.UntrustedIframe = inUntrustedIframe(b.page.URL, opts.TabURL, b.script.SavedURLs)

	passwordFields := loadPasswordFields(b.fields, passwordQuery{
		mustBeEmpty:     opts.OnlyEmptyFields,
		fillNewPassword: opts.FillNewPassword,
	})
	if len(passwordFields) == 0 && !opts.OnlyVisibleFields {
		passwordFields = loadPasswordFields(b.fields, passwordQuery{
			canBeHidden:     true,
			canBeReadOnly:   true,
			mustBeEmpty:     opts.OnlyEmptyFields,
			fillNewPassword: opts.FillNewPassword,
		})
	}

	var usernames, passwords []*PageField

	if login.Password == "" {
		// Without a password only the username-only fill applies.
		if len(passwordFields) == 0 {
			usernames = b.fuzzyUsernameFields(login)
		}
		b.fillEach(usernames, login.Username)
		return
	}

	for _, key := range formKeys(b.page.Forms) {
		for _, pf := range passwordFields {
			if pf.Form != key {
				continue
			}
			passwords = append(passwords, pf)
			if u := b.usernameFor(login, pf, false); u != nil {
				usernames = append(usernames, u)
			}
		}
	}

	if len(passwordFields) > 0 && len(passwords) == 0 {
		// No password field belongs to a form: use the first one on the page
		// and look for a username anywhere before it.
		pf := passwordFields[0]
		passwords = append(passwords, pf)
		if pf.ElementNumber > 0 {
			if u := b.usernameFor(login, pf, true); u != nil {
				usernames = append(usernames, u)
			}
		}
	}

	if len(passwordFields) == 0 {
		usernames = b.fuzzyUsernameFields(login)
	}

	b.fillEach(usernames, login.Username)
	b.fillEach(passwords, login.Password)
}

// usernameFor finds the username field for a password field. The visible
// search is scoped to the password's form unless withoutForm is set; the
// retry drops the form scope and accepts hidden and read-only fields.
func (b *scriptBuilder) usernameFor(login *Login, pf *PageField, withoutForm bool) *PageField {
	if login.Username == "" {
		return nil
	}
	u := findUsernameField(b.fields, pf, usernameQuery{withoutForm: withoutForm})
	if u == nil && !b.opts.OnlyVisibleFields {
		u = findUsernameField(b.fields, pf, usernameQuery{
			canBeHidden:   true,
			canBeReadOnly: true,
			withoutForm:   true,
		})
	}
	return u
}

// fuzzyUsernameFields returns the first visible text field whose attributes
// loosely mention a username, for pages without any password field.
func (b *scriptBuilder) fuzzyUsernameFields(login *Login) []*PageField {
	if b.opts.SkipUsernameOnlyFill || login.Username == "" {
		return nil
	}
	for _, f := range b.fields {
		if f.Viewable && f.isTextLike() && fieldIsFuzzyMatch(f, UsernameFieldNames) {
			return []*PageField{f}
		}
	}
	return nil
}

// inUntrustedIframe reports whether the page is a frame on a different host
// than the tab that none of the login's saved URLs vouch for.
func inUntrustedIframe(pageURL, tabURL string, savedURLs []string) bool {
	if pageURL == "" || tabURL == "" || pageURL == tabURL {
		return false
	}
	pageHost := hostOf(pageURL)
	if pageHost == "" || strings.EqualFold(pageHost, hostOf(tabURL)) {
		return false
	}
	for _, u := range savedURLs {
		if strings.EqualFold(pageHost, hostOf(u)) {
			return false
		}
	}
	return true
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
