package fixture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/autofill/pkg/autofill"
)

// ErrUnknownCipherType is returned when a cipher document names no known item type.
var ErrUnknownCipherType = errors.New("unknown cipher type")

// CipherDocument is the file form of a vault item. Exactly one of Login,
// Card and Identity is read, chosen by Type.
type CipherDocument struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Type     string            `json:"type" yaml:"type"`
	Fields   []FieldDocument   `json:"fields" yaml:"fields"`
	Login    *LoginDocument    `json:"login" yaml:"login"`
	Card     *CardDocument     `json:"card" yaml:"card"`
	Identity *IdentityDocument `json:"identity" yaml:"identity"`
}

// FieldDocument is a custom field. Type is text, hidden, boolean or linked;
// linked fields name their target with LinkedID.
type FieldDocument struct {
	Name     string  `json:"name" yaml:"name"`
	Value    *string `json:"value" yaml:"value"`
	Type     string  `json:"type" yaml:"type"`
	LinkedID int     `json:"linkedId" yaml:"linkedId"`
}

// LoginDocument is a login item.
type LoginDocument struct {
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	TOTP     string        `json:"totp" yaml:"totp"`
	URIs     []URIDocument `json:"uris" yaml:"uris"`
}

// URIDocument is a login website. Match is domain, host, startsWith, exact,
// regex or never; empty means domain.
type URIDocument struct {
	URI   string `json:"uri" yaml:"uri"`
	Match string `json:"match" yaml:"match"`
}

// CardDocument mirrors autofill.Card with document field names.
type CardDocument struct {
	CardholderName string `json:"cardholderName" yaml:"cardholderName"`
	Brand          string `json:"brand" yaml:"brand"`
	Number         string `json:"number" yaml:"number"`
	ExpMonth       string `json:"expMonth" yaml:"expMonth"`
	ExpYear        string `json:"expYear" yaml:"expYear"`
	Code           string `json:"code" yaml:"code"`
}

// IdentityDocument mirrors autofill.Identity with document field names.
type IdentityDocument struct {
	Title          string `json:"title" yaml:"title"`
	FirstName      string `json:"firstName" yaml:"firstName"`
	MiddleName     string `json:"middleName" yaml:"middleName"`
	LastName       string `json:"lastName" yaml:"lastName"`
	Address1       string `json:"address1" yaml:"address1"`
	Address2       string `json:"address2" yaml:"address2"`
	Address3       string `json:"address3" yaml:"address3"`
	City           string `json:"city" yaml:"city"`
	State          string `json:"state" yaml:"state"`
	PostalCode     string `json:"postalCode" yaml:"postalCode"`
	Country        string `json:"country" yaml:"country"`
	Company        string `json:"company" yaml:"company"`
	Email          string `json:"email" yaml:"email"`
	Phone          string `json:"phone" yaml:"phone"`
	SSN            string `json:"ssn" yaml:"ssn"`
	Username       string `json:"username" yaml:"username"`
	PassportNumber string `json:"passportNumber" yaml:"passportNumber"`
	LicenseNumber  string `json:"licenseNumber" yaml:"licenseNumber"`
}

var cipherTypes = map[string]autofill.CipherType{
	"login":    autofill.CipherTypeLogin,
	"1":        autofill.CipherTypeLogin,
	"card":     autofill.CipherTypeCard,
	"3":        autofill.CipherTypeCard,
	"identity": autofill.CipherTypeIdentity,
	"4":        autofill.CipherTypeIdentity,
}

var fieldTypes = map[string]autofill.FieldType{
	"":        autofill.FieldTypeCustomText,
	"text":    autofill.FieldTypeCustomText,
	"hidden":  autofill.FieldTypeCustomHidden,
	"boolean": autofill.FieldTypeCustomBoolean,
	"linked":  autofill.FieldTypeCustomLinked,
}

var uriMatches = map[string]autofill.URIMatch{
	"":           autofill.URIMatchDomain,
	"domain":     autofill.URIMatchDomain,
	"host":       autofill.URIMatchHost,
	"startswith": autofill.URIMatchStartsWith,
	"exact":      autofill.URIMatchExact,
	"regex":      autofill.URIMatchRegularExpression,
	"never":      autofill.URIMatchNever,
}

// Cipher converts the document into an engine cipher.
func (d *CipherDocument) Cipher() (*autofill.Cipher, error) {
	c := &autofill.Cipher{ID: d.ID, Name: d.Name}

	typ, ok := cipherTypes[strings.ToLower(strings.TrimSpace(d.Type))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", d.Type, ErrUnknownCipherType)
	}

	switch typ {
	case autofill.CipherTypeLogin:
		if d.Login == nil {
			return nil, errors.New("login cipher without login section")
		}
		login, err := d.Login.login()
		if err != nil {
			return nil, err
		}
		c.Item = login
	case autofill.CipherTypeCard:
		if d.Card == nil {
			return nil, errors.New("card cipher without card section")
		}
		card := autofill.Card(*d.Card)
		c.Item = &card
	case autofill.CipherTypeIdentity:
		if d.Identity == nil {
			return nil, errors.New("identity cipher without identity section")
		}
		id := autofill.Identity(*d.Identity)
		c.Item = &id
	}

	for i, f := range d.Fields {
		ft, ok := fieldTypes[strings.ToLower(f.Type)]
		if !ok {
			return nil, fmt.Errorf("field %d (%s): unknown type %q", i, f.Name, f.Type)
		}
		c.Fields = append(c.Fields, autofill.CustomField{
			Name:     f.Name,
			Value:    f.Value,
			Type:     ft,
			LinkedID: autofill.LinkedID(f.LinkedID),
		})
	}
	return c, nil
}

func (d *LoginDocument) login() (*autofill.Login, error) {
	l := &autofill.Login{Username: d.Username, Password: d.Password, TOTP: d.TOTP}
	for _, u := range d.URIs {
		m, ok := uriMatches[strings.ToLower(u.Match)]
		if !ok {
			n, err := strconv.Atoi(u.Match)
			if err != nil || n < 0 || n > int(autofill.URIMatchNever) {
				return nil, fmt.Errorf("uri %s: unknown match %q", u.URI, u.Match)
			}
			m = autofill.URIMatch(n)
		}
		l.URIs = append(l.URIs, autofill.LoginURI{URI: u.URI, Match: m})
	}
	return l, nil
}
