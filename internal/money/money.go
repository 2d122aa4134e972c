package money

import (
	"strconv"
	"strings"
)

// Money is a monetary amount in minor units (haléře, 1/100 Kč).
type Money = int64

// FromCZK converts whole crowns to minor units.
func FromCZK(crowns int64) Money { return crowns * 100 }

// FormatCZK formats an amount in minor units as a Czech price string,
// e.g. "1 200 Kč" or "1 199,50 Kč". Whole crowns are shown without decimals.
func FormatCZK(m Money) string {
	neg := m < 0
	if neg {
		m = -m
	}
	crowns := m / 100
	cents := m % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(group(crowns, ' '))
	if cents != 0 {
		b.WriteByte(',')
		b.WriteString(pad2(cents))
	}
	b.WriteString(" Kč")
	return b.String()
}

// FormatEN formats an amount in minor units for the English storefront,
// e.g. "CZK 1,200" or "CZK 1,199.50".
func FormatEN(m Money) string {
	neg := m < 0
	if neg {
		m = -m
	}
	crowns := m / 100
	cents := m % 100

	var b strings.Builder
	b.WriteString("CZK ")
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(group(crowns, ','))
	if cents != 0 {
		b.WriteByte('.')
		b.WriteString(pad2(cents))
	}
	return b.String()
}

// Format picks the locale-appropriate formatter. Anything that is not "en"
// renders as Czech, matching the storefront's locale fallback.
func Format(m Money, lang string) string {
	if lang == "en" {
		return FormatEN(m)
	}
	return FormatCZK(m)
}

// group renders n with a thousands separator inserted from the left.
func group(n int64, sep byte) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
