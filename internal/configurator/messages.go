package configurator

import (
	"strings"

	"github.com/jhavlik/venceflor/internal/domain"
)

// ReasonCode keys a validation message in the bilingual catalog.
type ReasonCode string

const (
	ReasonOptionRequired      ReasonCode = "optionRequired"
	ReasonSizeRequired        ReasonCode = "sizeRequired"
	ReasonRibbonColorRequired ReasonCode = "ribbonColorRequired"
	ReasonRibbonTextRequired  ReasonCode = "ribbonTextRequired"
	ReasonMinSelections       ReasonCode = "minSelections"
	ReasonMaxSelections       ReasonCode = "maxSelections"
	ReasonChoiceUnavailable   ReasonCode = "choiceUnavailable"

	ReasonCustomTextEmpty      ReasonCode = "customTextEmpty"
	ReasonCustomTextTooShort   ReasonCode = "customTextTooShort"
	ReasonCustomTextTooLong    ReasonCode = "customTextTooLong"
	ReasonCustomTextDisallowed ReasonCode = "customTextDisallowed"
	ReasonCustomTextNearLimit  ReasonCode = "customTextNearLimit"

	ReasonDeliveryDateRequired ReasonCode = "deliveryDateRequired"
	ReasonDeliveryDateInvalid  ReasonCode = "deliveryDateInvalid"
	ReasonDeliveryDateTooSoon  ReasonCode = "deliveryDateTooSoon"
	ReasonDeliveryDateTooLate  ReasonCode = "deliveryDateTooLate"
)

// MessageCatalog maps reason codes to bilingual message templates.
// Templates may contain {placeholder} tokens substituted at render time.
type MessageCatalog struct {
	messages map[ReasonCode]domain.Localized
}

func NewMessageCatalog(messages map[ReasonCode]domain.Localized) *MessageCatalog {
	return &MessageCatalog{messages: messages}
}

// Render resolves a reason code for the requested locale and substitutes
// {key} placeholders from params. An unknown code renders as the raw key so
// a translation gap shows up on screen instead of crashing the configurator.
func (c *MessageCatalog) Render(code ReasonCode, loc domain.Locale, params map[string]string) string {
	if c == nil || c.messages == nil {
		return string(code)
	}
	msg, ok := c.messages[code]
	if !ok {
		return string(code)
	}
	text := msg.Get(loc)
	for k, v := range params {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}

var defaultCatalog = NewMessageCatalog(map[ReasonCode]domain.Localized{
	ReasonOptionRequired: {
		CS: "Vyberte prosím {option}",
		EN: "Please select {option}",
	},
	ReasonSizeRequired: {
		CS: "Prosím vyberte velikost věnce před přidáním do košíku",
		EN: "Please select a wreath size before adding to cart",
	},
	ReasonRibbonColorRequired: {
		CS: "Při výběru stuhy je nutné zvolit barvu stuhy",
		EN: "Ribbon color is required when ribbon is selected",
	},
	ReasonRibbonTextRequired: {
		CS: "Při výběru stuhy je nutné zvolit text stuhy",
		EN: "Ribbon text is required when ribbon is selected",
	},
	ReasonMinSelections: {
		CS: "{option}: vyberte alespoň {min} možností (vybráno {current})",
		EN: "{option}: select at least {min} options (selected {current})",
	},
	ReasonMaxSelections: {
		CS: "{option}: vyberte nejvýše {max} možností (vybráno {current})",
		EN: "{option}: select at most {max} options (selected {current})",
	},
	ReasonChoiceUnavailable: {
		CS: "{choice} není momentálně k dispozici",
		EN: "{choice} is currently unavailable",
	},
	ReasonCustomTextEmpty: {
		CS: "Vlastní text nesmí být prázdný",
		EN: "Custom text cannot be empty",
	},
	ReasonCustomTextTooShort: {
		CS: "Vlastní text musí mít alespoň 2 znaky",
		EN: "Custom text must be at least 2 characters",
	},
	ReasonCustomTextTooLong: {
		CS: "Vlastní text může mít maximálně {max} znaků",
		EN: "Custom text can be at most {max} characters",
	},
	ReasonCustomTextDisallowed: {
		CS: "Vlastní text obsahuje nepovolené znaky nebo slova",
		EN: "Custom text contains disallowed characters or content",
	},
	ReasonCustomTextNearLimit: {
		CS: "Vlastní text se blíží limitu {max} znaků",
		EN: "Custom text is approaching the {max} character limit",
	},
	ReasonDeliveryDateRequired: {
		CS: "Zvolte prosím datum doručení",
		EN: "Please choose a delivery date",
	},
	ReasonDeliveryDateInvalid: {
		CS: "Datum doručení má neplatný formát",
		EN: "Delivery date has an invalid format",
	},
	ReasonDeliveryDateTooSoon: {
		CS: "Doručení je možné nejdříve {date}",
		EN: "Earliest possible delivery is {date}",
	},
	ReasonDeliveryDateTooLate: {
		CS: "Doručení je možné nejpozději {date}",
		EN: "Latest possible delivery is {date}",
	},
})
