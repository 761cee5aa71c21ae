package autofill

// UsernameFieldNames are the exact names that identify a login username field.
var UsernameFieldNames = []string{
	"username", "user name", "email", "email address", "e-mail", "e-mail address",
	"userid", "user id", "customer id", "login id", "login",
	// German
	"benutzername", "benutzer name", "email adresse", "e-mail adresse", "benutzerid", "benutzer id",
}

// PasswordFieldExcludeList keeps text fields like "password hint" from being
// treated as password fields.
var PasswordFieldExcludeList = []string{
	"hint", "captcha", "findanything", "forgot", "onetimepassword",
}

// ExcludedAutofillTypes are input types never filled with card or identity data.
var ExcludedAutofillTypes = []string{
	"radio", "checkbox", "hidden", "file", "button", "image", "reset", "search", "submit",
}

var usernameDirectives = parseDirectives(UsernameFieldNames)

// slotAttrs are tested in order when assigning card and identity slots.
var slotAttrs = []fieldAttr{
	attrAutoComplete, attrHTMLID, attrHTMLName, attrLabelTag, attrLabelAria,
	attrPlaceholder, attrLabelLeft, attrLabelTop,
}

// cardHintAttrs are searched for format hints such as "mm/yy".
var cardHintAttrs = []fieldAttr{
	attrAutoComplete, attrHTMLID, attrHTMLName, attrLabelTag, attrLabelAria,
	attrPlaceholder, attrLabelLeft, attrLabelTop, attrLabelRight,
}

var (
	cardholderFieldNames = []string{
		"cc-name", "card-name", "cardholder-name", "cardholder", "name", "nom",
	}
	cardholderFieldNameValues = []string{
		"cc-name", "card-name", "cardholder-name", "cardholder", "tbName",
	}
	cardNumberFieldNames = []string{
		"cc-number", "cc-num", "card-number", "card-num", "number", "cc", "cc-no", "card-no",
		"credit-card", "numero-carte", "carte", "carte-credit", "num-carte", "cb-num",
	}
	cardNumberFieldNameValues = []string{
		"cc-number", "cc-num", "card-number", "card-num", "cc-no", "card-no",
		"numero-carte", "num-carte", "cb-num",
	}
	cardExpiryFieldNames = []string{
		"cc-exp", "card-exp", "cc-expiration", "card-expiration", "cc-ex", "card-ex",
		"card-expire", "card-expiry", "validite", "expiration", "expiry", "mm-yy",
		"mm-yyyy", "yy-mm", "yyyy-mm", "expiration-date", "payment-card-expiration",
		"payment-cc-date",
	}
	cardExpiryFieldNameValues = []string{
		"mm-yy", "mm-yyyy", "yy-mm", "yyyy-mm", "expiration-date", "payment-card-expiration",
	}
	expiryMonthFieldNames = []string{
		"exp-month", "cc-exp-month", "cc-month", "card-month", "cc-mo", "card-mo", "exp-mo",
		"card-exp-mo", "cc-exp-mo", "card-expiration-month", "expiration-month", "cc-mm",
		"cc-m", "card-mm", "card-m", "card-exp-mm", "cc-exp-mm", "exp-mm", "exp-m",
		"expire-month", "expire-mo", "expiry-month", "expiry-mo", "card-expire-month",
		"card-expire-mo", "card-expiry-month", "card-expiry-mo", "mois-validite",
		"mois-expiration", "m-validite", "m-expiration", "expiry-date-field-month",
		"expiration-date-month", "expiration-date-mm", "exp-mon", "validity-mo",
		"exp-date-mo", "cb-date-mois", "date-m",
	}
	expiryYearFieldNames = []string{
		"exp-year", "cc-exp-year", "cc-year", "card-year", "cc-yr", "card-yr", "exp-yr",
		"card-exp-yr", "cc-exp-yr", "card-expiration-year", "expiration-year", "cc-yy",
		"cc-y", "card-yy", "card-y", "card-exp-yy", "cc-exp-yy", "exp-yy", "exp-y",
		"cc-yyyy", "card-yyyy", "card-exp-yyyy", "cc-exp-yyyy", "expire-year", "expire-yr",
		"expiry-year", "expiry-yr", "card-expire-year", "card-expire-yr", "card-expiry-year",
		"card-expiry-yr", "an-validite", "an-expiration", "annee-validite",
		"annee-expiration", "expiry-date-field-year", "expiration-date-year", "cb-date-ann",
		"expiration-date-yy", "expiration-date-yyyy", "validity-year", "exp-date-year",
		"date-y",
	}
	cvvFieldNames = []string{
		"cvv", "cvc", "cvv2", "cc-csc", "cc-cvv", "card-csc", "card-cvv", "cvd", "cid",
		"cvc2", "cnv", "cvn2", "cc-code", "card-code", "code-securite", "security-code",
		"crypto", "card-verif", "verification-code", "csc", "ccv",
	}
	cardBrandFieldNames = []string{
		"cc-type", "card-type", "card-brand", "cc-brand", "cb-type",
	}
)

// expHint is one month/year abbreviation triple used to detect the layout
// of a combined expiry field.
type expHint struct {
	month     string
	yearShort string
	yearLong  string
}

var expHints = []expHint{
	{"mm", "yy", "yyyy"},
	{"mm", "jj", "jjjj"},
	{"mm", "aa", "aaaa"},
	{"mo", "yr", "year"},
	{"mon", "yr", "year"},
	{"month", "yr", "year"},
}

var expSeparators = []string{"/", "-", ""}

var (
	fullNameFieldNames      = []string{"name", "full-name", "your-name"}
	fullNameFieldNameValues = []string{"full-name", "your-name"}
	titleFieldNames         = []string{"honorific-prefix", "prefix", "title"}
	firstnameFieldNames     = []string{"f-name", "first-name", "given-name", "first-n", "vorname"}
	middlenameFieldNames    = []string{
		"m-name", "middle-name", "additional-name", "middle-initial", "middle-n", "middle-i",
	}
	lastnameFieldNames = []string{
		"l-name", "last-name", "s-name", "surname", "family-name", "family-n", "last-n",
		"nachname", "familienname",
	}
	emailFieldNames   = []string{"e-mail", "email", "email-address"}
	addressFieldNames = []string{
		"address", "street-address", "addr", "street", "mailing-addr", "billing-addr",
		"mail-addr", "bill-addr", "line1", "line-1", "strasse", "hausnummer",
		"housenumber", "house-number",
	}
	addressFieldNameValues = []string{
		"street-address", "mailing-addr", "billing-addr", "mail-addr", "bill-addr",
	}
	address1FieldNames = []string{"address-1", "address-line-1", "addr-1", "street-1"}
	address2FieldNames = []string{
		"address-2", "address-line-2", "addr-2", "street-2", "line2", "line-2",
	}
	address3FieldNames   = []string{"address-3", "address-line-3", "addr-3", "street-3", "line3", "line-3"}
	postalCodeFieldNames = []string{
		"postal", "zip", "zip2", "zip-code", "postal-code", "post-code", "address-zip",
		"address-postal", "address-code", "address-postal-code", "address-zip-code",
		"plz", "postleitzahl",
	}
	cityFieldNames = []string{
		"city", "town", "address-level-2", "address-city", "address-town", "ort", "stadt", "wohnort",
	}
	stateFieldNames = []string{
		"state", "province", "provence", "address-level-1", "address-state",
		"address-province", "bundesland",
	}
	countryFieldNames = []string{
		"country", "country-code", "country-name", "address-country", "address-country-name",
		"address-country-code", "land",
	}
	phoneFieldNames = []string{
		"phone", "mobile", "mobile-phone", "tel", "telephone", "phone-number",
	}
	identityUserNameFieldNames = []string{"user-name", "user-id", "screen-name"}
	companyFieldNames          = []string{
		"company", "company-name", "organization", "organization-name",
	}
)

// cardSlot names a card attribute a page field can be assigned to.
type cardSlot int

const (
	cardSlotCardholderName cardSlot = iota
	cardSlotNumber
	cardSlotExp
	cardSlotExpMonth
	cardSlotExpYear
	cardSlotCode
	cardSlotBrand
	numCardSlots
)

// cardSlotNames is ordered by claim priority.
var cardSlotNames = [numCardSlots]nameSet{
	cardSlotCardholderName: exactOrContains(cardholderFieldNames, cardholderFieldNameValues),
	cardSlotNumber:         exactOrContains(cardNumberFieldNames, cardNumberFieldNameValues),
	cardSlotExp:            exactOrContains(cardExpiryFieldNames, cardExpiryFieldNameValues),
	cardSlotExpMonth:       anyContains(expiryMonthFieldNames),
	cardSlotExpYear:        anyContains(expiryYearFieldNames),
	cardSlotCode:           anyContains(cvvFieldNames),
	cardSlotBrand:          anyContains(cardBrandFieldNames),
}

// identitySlot names an identity attribute a page field can be assigned to.
type identitySlot int

const (
	identitySlotName identitySlot = iota
	identitySlotFirstName
	identitySlotMiddleName
	identitySlotLastName
	identitySlotTitle
	identitySlotEmail
	identitySlotAddress
	identitySlotAddress1
	identitySlotAddress2
	identitySlotAddress3
	identitySlotPostalCode
	identitySlotCity
	identitySlotState
	identitySlotCountry
	identitySlotPhone
	identitySlotUsername
	identitySlotCompany
	numIdentitySlots
)

// identitySlotNames is ordered by claim priority.
var identitySlotNames = [numIdentitySlots]nameSet{
	identitySlotName:       exactOrContains(fullNameFieldNames, fullNameFieldNameValues),
	identitySlotFirstName:  anyContains(firstnameFieldNames),
	identitySlotMiddleName: anyContains(middlenameFieldNames),
	identitySlotLastName:   anyContains(lastnameFieldNames),
	identitySlotTitle:      anyContains(titleFieldNames),
	identitySlotEmail:      anyContains(emailFieldNames),
	identitySlotAddress:    exactOrContains(addressFieldNames, addressFieldNameValues),
	identitySlotAddress1:   anyContains(address1FieldNames),
	identitySlotAddress2:   anyContains(address2FieldNames),
	identitySlotAddress3:   anyContains(address3FieldNames),
	identitySlotPostalCode: anyContains(postalCodeFieldNames),
	identitySlotCity:       anyContains(cityFieldNames),
	identitySlotState:      anyContains(stateFieldNames),
	identitySlotCountry:    anyContains(countryFieldNames),
	identitySlotPhone:      anyContains(phoneFieldNames),
	identitySlotUsername:   anyContains(identityUserNameFieldNames),
	identitySlotCompany:    anyContains(companyFieldNames),
}
