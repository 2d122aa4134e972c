package configurator

import (
	"strings"

	"github.com/jhavlik/venceflor/internal/domain"
)

// DefaultMaxTextLength caps free-text customizations (ribbon inscriptions)
// when the choice does not define its own limit.
const DefaultMaxTextLength = 50

// SanitizeText normalizes free-text input before validation and storage:
// surrounding whitespace is trimmed, internal whitespace runs collapse to a
// single space, angle brackets are stripped, and the result is hard-truncated
// to maxLength runes (maxLength <= 0 means DefaultMaxTextLength). The
// function is deterministic, locale-independent and idempotent.
func SanitizeText(raw string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	s := strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, raw)
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > maxLength {
		s = strings.TrimRight(string(runes[:maxLength]), " ")
	}
	return s
}

// SanitizeSelections returns a copy of the selection set with every custom
// value normalized against the catalog: free-text values run through
// SanitizeText with the owning choice's length cap, everything else is just
// trimmed. Selections referencing unknown options pass through untouched;
// the validator and pricer deal with those.
func SanitizeSelections(options []domain.CustomizationOption, selections []domain.Customization) []domain.Customization {
	if len(selections) == 0 {
		return nil
	}
	out := make([]domain.Customization, len(selections))
	copy(out, selections)
	for i := range out {
		if out[i].CustomValue == "" {
			continue
		}
		opt := findOption(options, out[i].OptionID)
		if opt == nil {
			continue
		}
		sanitized := false
		for _, id := range out[i].ChoiceIDs {
			if c := opt.Choice(id); c != nil && c.AllowCustomInput {
				out[i].CustomValue = SanitizeText(out[i].CustomValue, c.MaxLength)
				sanitized = true
				break
			}
		}
		if !sanitized {
			out[i].CustomValue = strings.TrimSpace(out[i].CustomValue)
		}
	}
	return out
}
