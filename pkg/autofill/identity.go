package autofill

import (
	"unicode/utf8"

	"github.com/entrhq/autofill/pkg/autofill/regions"
)

// RegionLookup resolves full state, province and country names to ISO codes.
type RegionLookup interface {
	StateCode(name string) (string, bool)
	CountryCode(name string) (string, bool)
}

func defaultRegions() RegionLookup {
	return regions.Default()
}

func (b *scriptBuilder) fillIdentity(id *Identity) {
	slots := assignSlots(b.fields, b.filled, identitySlotNames[:])

	b.fillWithValue(slots[identitySlotTitle], id.Title)
	b.fillWithValue(slots[identitySlotFirstName], id.FirstName)
	b.fillWithValue(slots[identitySlotMiddleName], id.MiddleName)
	b.fillWithValue(slots[identitySlotLastName], id.LastName)
	b.fillWithValue(slots[identitySlotAddress1], id.Address1)
	b.fillWithValue(slots[identitySlotAddress2], id.Address2)
	b.fillWithValue(slots[identitySlotAddress3], id.Address3)
	b.fillWithValue(slots[identitySlotCity], id.City)
	b.fillWithValue(slots[identitySlotPostalCode], id.PostalCode)
	b.fillWithValue(slots[identitySlotCompany], id.Company)
	b.fillWithValue(slots[identitySlotEmail], id.Email)
	b.fillWithValue(slots[identitySlotPhone], id.Phone)
	b.fillWithValue(slots[identitySlotUsername], id.Username)

	b.fillRegion(slots[identitySlotState], id.State, b.regions.StateCode)
	b.fillRegion(slots[identitySlotCountry], id.Country, b.regions.CountryCode)

	if f := slots[identitySlotName]; f != nil && (id.FirstName != "" || id.LastName != "") {
		b.fillWithValue(f, id.FullName())
	}
	if f := slots[identitySlotAddress]; f != nil && id.Address1 != "" {
		b.fillWithValue(f, id.FullAddress())
	}
}

// fillRegion fills the ISO code for a full region name when one is known and
// the field accepts it, and the raw value otherwise.
func (b *scriptBuilder) fillRegion(f *PageField, value string, lookup func(string) (string, bool)) {
	if f == nil || value == "" {
		return
	}
	if utf8.RuneCountInString(value) > 2 {
		if code, ok := lookup(value); ok && b.fillWithValue(f, code) {
			return
		}
	}
	b.fillWithValue(f, value)
}
