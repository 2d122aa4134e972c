package configurator

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhavlik/venceflor/internal/domain"
)

// ValidateParams tunes a validation pass. Strict promotes warnings to
// errors (used by the add-to-cart gate); Now anchors delivery-date checks
// and defaults to time.Now so tests can pin the clock.
type ValidateParams struct {
	Locale domain.Locale
	Strict bool
	Now    time.Time
}

// ValidationResult is what the configurator UI renders. Errors block
// add-to-cart; warnings are advisory unless the pass was strict.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// isoDate is the wire format calendar choices submit their date in.
const isoDate = "2006-01-02"

// minCustomTextLen is the shortest inscription the florist will embroider.
const minCustomTextLen = 2

// nearLimitMargin triggers the "approaching the limit" warning once the
// text is within this many runes of the cap.
const nearLimitMargin = 5

var denyTokens = []string{
	"kurva", "píča", "pica", "hovno", "sráč", "srac", "debil", "kretén", "kreten",
	"fuck", "shit", "bitch", "asshole", "bastard", "cunt",
}

// Validate checks the selection set against the currently visible options
// and reports localized errors and warnings. It is a pure function of its
// inputs: selections for options outside visibleOptions are ignored, choice
// ids missing from the catalog are skipped (and surfaced through the
// engine's diagnostic sink), and nothing is ever mutated.
func (e *Engine) Validate(customizations []domain.Customization, visibleOptions []domain.CustomizationOption, p ValidateParams) ValidationResult {
	msgs := e.catalog()
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	errs := []string{}
	warns := []string{}

	addErr := func(code ReasonCode, params map[string]string) {
		errs = append(errs, msgs.Render(code, p.Locale, params))
	}
	addWarn := func(code ReasonCode, params map[string]string) {
		warns = append(warns, msgs.Render(code, p.Locale, params))
	}

	for i := range visibleOptions {
		opt := &visibleOptions[i]
		sel := domain.FindCustomization(customizations, opt.ID)

		var chosen []*domain.CustomizationChoice
		if sel != nil {
			for _, id := range sel.ChoiceIDs {
				c := opt.Choice(id)
				if c == nil {
					e.report(DiagnosticEvent{Kind: DiagUnknownChoice, OptionID: opt.ID, ChoiceID: id})
					continue
				}
				chosen = append(chosen, c)
			}
		}

		if len(chosen) == 0 {
			switch {
			case opt.Type == domain.OptionTypeSize && opt.Required:
				// Size gates cart admission, so it gets its own message
				// instead of the generic required-option one.
				addErr(ReasonSizeRequired, nil)
			case opt.Type == domain.OptionTypeRibbonColor && opt.DependsOn != nil:
				addErr(ReasonRibbonColorRequired, nil)
			case opt.Type == domain.OptionTypeRibbonText && opt.DependsOn != nil:
				addErr(ReasonRibbonTextRequired, nil)
			case opt.Required:
				addErr(ReasonOptionRequired, map[string]string{"option": opt.Name.Get(p.Locale)})
			}
			continue
		}

		// Bounds apply only once the option has a selection; emptiness is
		// the required rule's business.
		if opt.MinSelections != nil && len(chosen) < *opt.MinSelections {
			addErr(ReasonMinSelections, map[string]string{
				"option":  opt.Name.Get(p.Locale),
				"min":     strconv.Itoa(*opt.MinSelections),
				"current": strconv.Itoa(len(chosen)),
			})
		}
		if opt.MaxSelections != nil && len(chosen) > *opt.MaxSelections {
			addErr(ReasonMaxSelections, map[string]string{
				"option":  opt.Name.Get(p.Locale),
				"max":     strconv.Itoa(*opt.MaxSelections),
				"current": strconv.Itoa(len(chosen)),
			})
		}

		for _, c := range chosen {
			if !c.Available {
				addErr(ReasonChoiceUnavailable, map[string]string{"choice": c.Label.Get(p.Locale)})
			}
			switch {
			case c.RequiresCalendar:
				e.validateDeliveryDate(c, sel.CustomValue, now, p.Locale, addErr)
			case c.AllowCustomInput:
				e.validateCustomText(c, sel.CustomValue, addErr, addWarn)
			}
		}
	}

	if p.Strict && len(warns) > 0 {
		errs = append(errs, warns...)
		warns = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs, Warnings: warns}
}

func (e *Engine) validateCustomText(c *domain.CustomizationChoice, value string, addErr, addWarn func(ReasonCode, map[string]string)) {
	max := c.MaxLength
	if max <= 0 {
		max = DefaultMaxTextLength
	}
	text := strings.TrimSpace(value)
	n := utf8.RuneCountInString(text)

	switch {
	case n == 0:
		addErr(ReasonCustomTextEmpty, nil)
		return
	case n < minCustomTextLen:
		addErr(ReasonCustomTextTooShort, nil)
		return
	case n > max:
		addErr(ReasonCustomTextTooLong, map[string]string{"max": strconv.Itoa(max)})
		return
	}
	if strings.ContainsAny(text, "<>") || containsDeniedToken(text) {
		addErr(ReasonCustomTextDisallowed, nil)
		return
	}
	if n >= max-nearLimitMargin {
		addWarn(ReasonCustomTextNearLimit, map[string]string{"max": strconv.Itoa(max)})
	}
}

func containsDeniedToken(text string) bool {
	lower := strings.ToLower(text)
	for _, tok := range denyTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

func (e *Engine) validateDeliveryDate(c *domain.CustomizationChoice, value string, now time.Time, loc domain.Locale, addErr func(ReasonCode, map[string]string)) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		addErr(ReasonDeliveryDateRequired, nil)
		return
	}
	date, err := time.Parse(isoDate, raw)
	if err != nil {
		addErr(ReasonDeliveryDateInvalid, nil)
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, 0, c.MinDaysFromNow)
	if date.Before(earliest) {
		addErr(ReasonDeliveryDateTooSoon, map[string]string{"date": formatDate(earliest, loc)})
		return
	}
	if c.MaxDaysFromNow > 0 {
		latest := today.AddDate(0, 0, c.MaxDaysFromNow)
		if date.After(latest) {
			addErr(ReasonDeliveryDateTooLate, map[string]string{"date": formatDate(latest, loc)})
		}
	}
}

// formatDate renders a day bound the way the storefront writes dates:
// Czech as "5.9.2026", English as ISO.
func formatDate(t time.Time, loc domain.Locale) string {
	if loc == domain.LocaleEN {
		return t.Format(isoDate)
	}
	return t.Format("2.1.2006")
}
