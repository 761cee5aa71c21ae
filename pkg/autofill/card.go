package autofill

import (
	"strconv"
	"strings"
)

func (b *scriptBuilder) fillCard(card *Card) {
	slots := assignSlots(b.fields, b.filled, cardSlotNames[:])

	b.fillWithValue(slots[cardSlotCardholderName], card.CardholderName)
	b.fillWithValue(slots[cardSlotNumber], card.Number)
	b.fillWithValue(slots[cardSlotCode], card.Code)
	b.fillWithValue(slots[cardSlotBrand], card.Brand)

	if f := slots[cardSlotExpMonth]; f != nil && card.ExpMonth != "" {
		b.fillExpMonth(f, card.ExpMonth)
	}
	if f := slots[cardSlotExpYear]; f != nil && card.ExpYear != "" {
		b.fillExpYear(f, card.ExpYear)
	}
	if f := slots[cardSlotExp]; f != nil && card.ExpMonth != "" && card.ExpYear != "" {
		b.fillWithValue(f, formatCombinedExpiry(f, card.ExpMonth, card.ExpYear))
	}
}

func (b *scriptBuilder) fillExpMonth(f *PageField, month string) {
	if f.isSelect() {
		if i, ok := monthOptionIndex(f.selectOptions(), month); ok {
			if !b.filled.has(f.OPID) {
				b.fillByOPID(f, f.selectOptions()[i].Value)
			}
			return
		}
		b.fillWithValue(f, month)
		return
	}

	if fieldAttrsContain(f, "mm") || f.MaxLength == 2 {
		month = padMonth(month)
	}
	b.fillWithValue(f, month)
}

// monthOptionIndex maps a 1-12 month onto a month select. Twelve options are
// the months in order; with thirteen, an empty-valued last option means the
// placeholder trails the months, otherwise it leads them.
func monthOptionIndex(options []SelectOption, month string) (int, bool) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}

	switch len(options) {
	case 12:
		return m - 1, true
	case 13:
		if options[0].Value != "" && options[12].Value == "" {
			return m - 1, true
		}
		return m, true
	}
	return 0, false
}

func (b *scriptBuilder) fillExpYear(f *PageField, year string) {
	if f.isSelect() {
		if option, ok := findYearOption(f.selectOptions(), year); ok {
			if !b.filled.has(f.OPID) {
				b.fillByOPID(f, option.Value)
			}
			return
		}
		b.fillWithValue(f, year)
		return
	}

	switch {
	case fieldAttrsContain(f, "yyyy") || f.MaxLength == 4:
		year = expandYear(year)
	case fieldAttrsContain(f, "yy") || f.MaxLength == 2:
		year = shortYear(year)
	}
	b.fillWithValue(f, year)
}

// findYearOption looks for an exact match on value or text first, then for a
// two-digit option matching a four-digit year, then for a label of the form
// "prefix: year".
func findYearOption(options []SelectOption, year string) (SelectOption, bool) {
	for _, o := range options {
		if o.Value == year || o.Text == year {
			return o, true
		}
	}

	for _, o := range options {
		if len(year) == 4 {
			short := year[2:]
			if (len(o.Value) == 2 && o.Value == short) || (len(o.Text) == 2 && o.Text == short) {
				return o, true
			}
		}
		if i := strings.Index(o.Text, ":"); i > -1 {
			if v := strings.TrimSpace(o.Text[i+1:]); v != "" && v == year {
				return o, true
			}
		}
	}
	return SelectOption{}, false
}

// formatCombinedExpiry lays out month and year for a single expiry field
// according to the first format hint found in the field's attributes, e.g.
// "mm/yy", "yyyy-mm" or "mmyy". Without a hint the result is YYYY-MM.
func formatCombinedExpiry(f *PageField, month, year string) string {
	mm := fullMonth(month)
	yyyy := year
	yy := ""
	switch len(year) {
	case 2:
		yy = year
		yyyy = expandYear(year)
	case 4:
		yy = shortYear(year)
	}

	// A short hint is only taken when its long form is absent: "mm/yyyy"
	// contains "mm/yy".
	hasShort := func(short, long string) bool {
		return yy != "" && fieldAttrsContain(f, short) && !fieldAttrsContain(f, long)
	}

	for _, h := range expHints {
		for _, sep := range expSeparators {
			switch {
			case hasShort(h.month+sep+h.yearShort, h.month+sep+h.yearLong):
				return mm + sep + yy
			case fieldAttrsContain(f, h.month+sep+h.yearLong):
				return mm + sep + yyyy
			case hasShort(h.yearShort+sep+h.month, h.yearLong+sep+h.month):
				return yy + sep + mm
			case fieldAttrsContain(f, h.yearLong+sep+h.month):
				return yyyy + sep + mm
			}
		}
	}
	return yyyy + "-" + mm
}
