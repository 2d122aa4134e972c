package domain

import "github.com/jhavlik/venceflor/internal/money"

// OptionType tags the axis a customization option configures.
type OptionType string

const (
	OptionTypeSize        OptionType = "size"
	OptionTypeRibbon      OptionType = "ribbon"
	OptionTypeRibbonColor OptionType = "ribbon_color"
	OptionTypeRibbonText  OptionType = "ribbon_text"
	OptionTypeDelivery    OptionType = "delivery"
	OptionTypeOther       OptionType = "other"
)

// OptionDependency gates an option on another option's selection. The option
// is only active when the controlling option has at least one of the
// required choices selected.
type OptionDependency struct {
	OptionID          string   `json:"optionId"`
	RequiredChoiceIDs []string `json:"requiredChoiceIds"`
}

// CustomizationOption is one selectable axis of product configuration
// (wreath size, ribbon presence, ribbon color, ...). Options live inside the
// product's jsonb catalog column and are read-only at runtime.
type CustomizationOption struct {
	ID            string                `json:"id"`
	Type          OptionType            `json:"type"`
	Name          Localized             `json:"name"`
	Required      bool                  `json:"required"`
	MinSelections *int                  `json:"minSelections,omitempty"` // nil = no lower bound
	MaxSelections *int                  `json:"maxSelections,omitempty"` // nil = no upper bound
	DependsOn     *OptionDependency     `json:"dependsOn,omitempty"`
	Choices       []CustomizationChoice `json:"choices"`
}

// Choice returns the choice with the given id, or nil when the id is not
// part of this option's catalog.
func (o *CustomizationOption) Choice(id string) *CustomizationChoice {
	for i := range o.Choices {
		if o.Choices[i].ID == id {
			return &o.Choices[i]
		}
	}
	return nil
}

// CustomizationChoice is one selectable value within an option.
type CustomizationChoice struct {
	ID            string      `json:"id"`
	Label         Localized   `json:"label"`
	PriceModifier money.Money `json:"priceModifier"` // signed, minor units
	Available     bool        `json:"available"`

	// Free-text entry (custom ribbon text).
	AllowCustomInput bool `json:"allowCustomInput,omitempty"`
	MaxLength        int  `json:"maxLength,omitempty"` // 0 = default cap

	// Date-bound choices (delivery scheduling).
	RequiresCalendar bool `json:"requiresCalendar,omitempty"`
	MinDaysFromNow   int  `json:"minDaysFromNow,omitempty"`
	MaxDaysFromNow   int  `json:"maxDaysFromNow,omitempty"`
}

// Customization records the shopper's selection for a single option. One
// record per option; ChoiceIDs keeps display order, pricing ignores order.
type Customization struct {
	OptionID    string   `json:"optionId"`
	ChoiceIDs   []string `json:"choiceIds"`
	CustomValue string   `json:"customValue,omitempty"`
}

// Selected reports whether the given choice id is part of this selection.
func (c Customization) Selected(choiceID string) bool {
	for _, id := range c.ChoiceIDs {
		if id == choiceID {
			return true
		}
	}
	return false
}

// FindCustomization returns the first selection record for an option id.
// Later duplicates are stale client state and are ignored.
func FindCustomization(customizations []Customization, optionID string) *Customization {
	for i := range customizations {
		if customizations[i].OptionID == optionID {
			return &customizations[i]
		}
	}
	return nil
}
