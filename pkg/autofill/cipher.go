package autofill

// CipherType is the discriminant of a Cipher's payload.
type CipherType int

const (
	CipherTypeLogin    CipherType = 1
	CipherTypeCard     CipherType = 3
	CipherTypeIdentity CipherType = 4
)

func (t CipherType) String() string {
	switch t {
	case CipherTypeLogin:
		return "login"
	case CipherTypeCard:
		return "card"
	case CipherTypeIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// Item is the typed payload of a Cipher. It is implemented only by
// *Login, *Card and *Identity.
type Item interface {
	Type() CipherType

	// LinkedValue resolves a linked custom field against this item.
	LinkedValue(id LinkedID) (string, bool)

	isItem()
}

// Cipher is a decrypted vault item handed to the engine.
type Cipher struct {
	ID     string
	Name   string
	Fields []CustomField
	Item   Item
}

// Type returns the payload discriminant, or 0 when the cipher carries no payload.
func (c *Cipher) Type() CipherType {
	if c == nil || c.Item == nil {
		return 0
	}
	return c.Item.Type()
}

// Login returns the Login payload, or nil.
func (c *Cipher) Login() *Login {
	if c == nil {
		return nil
	}
	l, _ := c.Item.(*Login)
	return l
}

// Card returns the Card payload, or nil.
func (c *Cipher) Card() *Card {
	if c == nil {
		return nil
	}
	card, _ := c.Item.(*Card)
	return card
}

// Identity returns the Identity payload, or nil.
func (c *Cipher) Identity() *Identity {
	if c == nil {
		return nil
	}
	id, _ := c.Item.(*Identity)
	return id
}

// FieldType is the kind of a custom field.
type FieldType int

const (
	FieldTypeCustomText    FieldType = 0
	FieldTypeCustomHidden  FieldType = 1
	FieldTypeCustomBoolean FieldType = 2
	FieldTypeCustomLinked  FieldType = 3
)

// CustomField is a user-defined name/value pair on a cipher.
type CustomField struct {
	Name  string
	Value *string
	Type  FieldType

	// LinkedID names the item attribute a Linked field reads from.
	LinkedID LinkedID
}

// URIMatch is the matching strategy stored with a login URI.
type URIMatch int

const (
	URIMatchDomain            URIMatch = 0
	URIMatchHost              URIMatch = 1
	URIMatchStartsWith        URIMatch = 2
	URIMatchExact             URIMatch = 3
	URIMatchRegularExpression URIMatch = 4
	URIMatchNever             URIMatch = 5
)

// LoginURI is a website a login belongs to.
type LoginURI struct {
	URI   string
	Match URIMatch
}

// Login holds website credentials.
type Login struct {
	Username string
	Password string
	URIs     []LoginURI
	TOTP     string
}

// Card holds payment card data.
type Card struct {
	CardholderName string
	Brand          string
	Number         string
	ExpMonth       string
	ExpYear        string
	Code           string
}

// Identity holds personal and address data.
type Identity struct {
	Title          string
	FirstName      string
	MiddleName     string
	LastName       string
	Address1       string
	Address2       string
	Address3       string
	City           string
	State          string
	PostalCode     string
	Country        string
	Company        string
	Email          string
	Phone          string
	SSN            string
	Username       string
	PassportNumber string
	LicenseNumber  string
}

func (*Login) Type() CipherType    { return CipherTypeLogin }
func (*Card) Type() CipherType     { return CipherTypeCard }
func (*Identity) Type() CipherType { return CipherTypeIdentity }

func (*Login) isItem()    {}
func (*Card) isItem()     {}
func (*Identity) isItem() {}

// FullName joins first, middle and last name with single spaces, skipping empty parts.
func (i *Identity) FullName() string {
	return joinNonEmpty(" ", i.FirstName, i.MiddleName, i.LastName)
}

// FullAddress joins the address lines with ", ", skipping empty lines.
func (i *Identity) FullAddress() string {
	return joinNonEmpty(", ", i.Address1, i.Address2, i.Address3)
}

// SavedURLs returns the login's URIs excluding those marked never-match.
func (l *Login) SavedURLs() []string {
	var urls []string
	for _, u := range l.URIs {
		if u.Match == URIMatchNever || u.URI == "" {
			continue
		}
		urls = append(urls, u.URI)
	}
	return urls
}
