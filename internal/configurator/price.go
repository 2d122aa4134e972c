package configurator

import (
	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
)

// Quote is the priced configuration: the total in minor units plus a
// per-option breakdown for display.
type Quote struct {
	TotalPrice money.Money   `json:"totalPrice"`
	Breakdown  []OptionQuote `json:"breakdown"`
}

// OptionQuote sums one option's contribution to the total.
type OptionQuote struct {
	OptionID      string        `json:"optionId"`
	OptionName    string        `json:"optionName"`
	TotalModifier money.Money   `json:"totalModifier"`
	Choices       []ChoiceQuote `json:"choices"`
	CustomValue   string        `json:"customValue,omitempty"`
}

type ChoiceQuote struct {
	ChoiceID      string      `json:"choiceId"`
	Label         string      `json:"label"`
	PriceModifier money.Money `json:"priceModifier"`
}

// Price folds the base price and every selected choice's modifier into a
// total. Selections referencing unknown option or choice ids are stale
// client state: they are skipped rather than failing the whole quote, with
// each skip surfaced through the engine's diagnostic sink. Callers pass the
// resolver's output as options, so selections for hidden options price at
// zero. Breakdown entries follow selection order; labels come out in the
// requested locale.
func (e *Engine) Price(basePrice money.Money, customizations []domain.Customization, options []domain.CustomizationOption, loc domain.Locale) Quote {
	q := Quote{TotalPrice: basePrice, Breakdown: []OptionQuote{}}
	seen := make(map[string]bool, len(customizations))

	for i := range customizations {
		sel := &customizations[i]
		if seen[sel.OptionID] {
			continue
		}
		seen[sel.OptionID] = true

		opt := findOption(options, sel.OptionID)
		if opt == nil {
			e.report(DiagnosticEvent{Kind: DiagUnknownOption, OptionID: sel.OptionID})
			continue
		}

		oq := OptionQuote{
			OptionID:    opt.ID,
			OptionName:  opt.Name.Get(loc),
			Choices:     []ChoiceQuote{},
			CustomValue: sel.CustomValue,
		}
		for _, id := range sel.ChoiceIDs {
			c := opt.Choice(id)
			if c == nil {
				e.report(DiagnosticEvent{Kind: DiagUnknownChoice, OptionID: opt.ID, ChoiceID: id})
				continue
			}
			oq.TotalModifier += c.PriceModifier
			oq.Choices = append(oq.Choices, ChoiceQuote{
				ChoiceID:      c.ID,
				Label:         c.Label.Get(loc),
				PriceModifier: c.PriceModifier,
			})
		}
		if len(oq.Choices) == 0 && oq.CustomValue == "" {
			continue
		}
		q.TotalPrice += oq.TotalModifier
		q.Breakdown = append(q.Breakdown, oq)
	}
	return q
}

func findOption(options []domain.CustomizationOption, id string) *domain.CustomizationOption {
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}
