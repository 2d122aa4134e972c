package domain

// Locale identifies a storefront language.
type Locale string

const (
	LocaleCS Locale = "cs"
	LocaleEN Locale = "en"
)

// ParseLocale normalizes a raw language tag. Czech is the storefront's
// primary language and the fallback for anything unknown.
func ParseLocale(raw string) Locale {
	switch raw {
	case "en", "en-US", "en-GB":
		return LocaleEN
	default:
		return LocaleCS
	}
}

// Localized is a bilingual text value. Catalog labels, product names and
// descriptions all carry both languages so the storefront never needs a
// translation lookup at render time.
type Localized struct {
	CS string `json:"cs"`
	EN string `json:"en"`
}

// Get returns the text for the requested locale. Fallback order: requested
// locale, then Czech, then English; the first non-empty value wins.
func (l Localized) Get(loc Locale) string {
	if loc == LocaleEN && l.EN != "" {
		return l.EN
	}
	if l.CS != "" {
		return l.CS
	}
	return l.EN
}
