package autofill

// LinkedID identifies an item attribute that a linked custom field reads.
type LinkedID int

// Login linked ids.
const (
	LinkedLoginUsername LinkedID = 100
	LinkedLoginPassword LinkedID = 101
)

// Card linked ids.
const (
	LinkedCardCardholderName LinkedID = 300
	LinkedCardExpMonth       LinkedID = 301
	LinkedCardExpYear        LinkedID = 302
	LinkedCardCode           LinkedID = 303
	LinkedCardBrand          LinkedID = 304
	LinkedCardNumber         LinkedID = 305
)

// Identity linked ids.
const (
	LinkedIdentityTitle          LinkedID = 400
	LinkedIdentityMiddleName     LinkedID = 401
	LinkedIdentityAddress1       LinkedID = 402
	LinkedIdentityAddress2       LinkedID = 403
	LinkedIdentityAddress3       LinkedID = 404
	LinkedIdentityCity           LinkedID = 405
	LinkedIdentityState          LinkedID = 406
	LinkedIdentityPostalCode     LinkedID = 407
	LinkedIdentityCountry        LinkedID = 408
	LinkedIdentityCompany        LinkedID = 409
	LinkedIdentityEmail          LinkedID = 410
	LinkedIdentityPhone          LinkedID = 411
	LinkedIdentitySSN            LinkedID = 412
	LinkedIdentityUsername       LinkedID = 413
	LinkedIdentityPassportNumber LinkedID = 414
	LinkedIdentityLicenseNumber  LinkedID = 415
	LinkedIdentityFirstName      LinkedID = 416
	LinkedIdentityLastName       LinkedID = 417
	LinkedIdentityFullName       LinkedID = 418
)

var loginLinks = map[LinkedID]func(*Login) string{
	LinkedLoginUsername: func(l *Login) string { return l.Username },
	LinkedLoginPassword: func(l *Login) string { return l.Password },
}

var cardLinks = map[LinkedID]func(*Card) string{
	LinkedCardCardholderName: func(c *Card) string { return c.CardholderName },
	LinkedCardExpMonth:       func(c *Card) string { return c.ExpMonth },
	LinkedCardExpYear:        func(c *Card) string { return c.ExpYear },
	LinkedCardCode:           func(c *Card) string { return c.Code },
	LinkedCardBrand:          func(c *Card) string { return c.Brand },
	LinkedCardNumber:         func(c *Card) string { return c.Number },
}

var identityLinks = map[LinkedID]func(*Identity) string{
	LinkedIdentityTitle:          func(i *Identity) string { return i.Title },
	LinkedIdentityMiddleName:     func(i *Identity) string { return i.MiddleName },
	LinkedIdentityAddress1:       func(i *Identity) string { return i.Address1 },
	LinkedIdentityAddress2:       func(i *Identity) string { return i.Address2 },
	LinkedIdentityAddress3:       func(i *Identity) string { return i.Address3 },
	LinkedIdentityCity:           func(i *Identity) string { return i.City },
	LinkedIdentityState:          func(i *Identity) string { return i.State },
	LinkedIdentityPostalCode:     func(i *Identity) string { return i.PostalCode },
	LinkedIdentityCountry:        func(i *Identity) string { return i.Country },
	LinkedIdentityCompany:        func(i *Identity) string { return i.Company },
	LinkedIdentityEmail:          func(i *Identity) string { return i.Email },
	LinkedIdentityPhone:          func(i *Identity) string { return i.Phone },
	LinkedIdentitySSN:            func(i *Identity) string { return i.SSN },
	LinkedIdentityUsername:       func(i *Identity) string { return i.Username },
	LinkedIdentityPassportNumber: func(i *Identity) string { return i.PassportNumber },
	LinkedIdentityLicenseNumber:  func(i *Identity) string { return i.LicenseNumber },
	LinkedIdentityFirstName:      func(i *Identity) string { return i.FirstName },
	LinkedIdentityLastName:       func(i *Identity) string { return i.LastName },
	LinkedIdentityFullName:       (*Identity).FullName,
}

// LinkedValue implements Item.
func (l *Login) LinkedValue(id LinkedID) (string, bool) {
	get, ok := loginLinks[id]
	if !ok {
		return "", false
	}
	return get(l), true
}

// LinkedValue implements Item.
func (c *Card) LinkedValue(id LinkedID) (string, bool) {
	get, ok := cardLinks[id]
	if !ok {
		return "", false
	}
	return get(c), true
}

// LinkedValue implements Item.
func (i *Identity) LinkedValue(id LinkedID) (string, bool) {
	get, ok := identityLinks[id]
	if !ok {
		return "", false
	}
	return get(i), true
}
