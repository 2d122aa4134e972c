package configurator

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jhavlik/venceflor/internal/domain"
)

func validateAll(t *testing.T, selections []domain.Customization, p ValidateParams) ValidationResult {
	t.Helper()
	var e Engine
	opts := wreathOptions()
	return e.Validate(selections, VisibleOptions(opts, selections), p)
}

func hasMessage(list []string, msg string) bool {
	for _, m := range list {
		if m == msg {
			return true
		}
	}
	return false
}

func TestValidateMissingSizeUsesCartGateMessage(t *testing.T) {
	res := validateAll(t, nil, ValidateParams{Locale: domain.LocaleCS})
	if res.IsValid {
		t.Fatal("empty selection must be invalid")
	}
	if !hasMessage(res.Errors, "Prosím vyberte velikost věnce před přidáním do košíku") {
		t.Fatalf("missing Czech size-gate error, got %v", res.Errors)
	}

	res = validateAll(t, nil, ValidateParams{Locale: domain.LocaleEN})
	if !hasMessage(res.Errors, "Please select a wreath size before adding to cart") {
		t.Fatalf("missing English size-gate error, got %v", res.Errors)
	}
}

func TestValidateRibbonSelectedRequiresColorAndText(t *testing.T) {
	res := validateAll(t, []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_yes"),
	}, ValidateParams{Locale: domain.LocaleCS})

	if res.IsValid {
		t.Fatal("ribbon without color and text must be invalid")
	}
	if !hasMessage(res.Errors, "Při výběru stuhy je nutné zvolit barvu stuhy") {
		t.Errorf("missing ribbon color error, got %v", res.Errors)
	}
	if !hasMessage(res.Errors, "Při výběru stuhy je nutné zvolit text stuhy") {
		t.Errorf("missing ribbon text error, got %v", res.Errors)
	}
	if len(res.Errors) != 2 {
		t.Errorf("expected exactly the two ribbon errors, got %v", res.Errors)
	}
}

func TestValidateCompleteSelectionPasses(t *testing.T) {
	res := validateAll(t, []domain.Customization{
		sel("size", "size_150"),
		sel("ribbon", "ribbon_yes"),
		sel("ribbon_color", "color_black"),
		textSel("ribbon_text", "text_custom", "S láskou vzpomínáme"),
		sel("delivery", "delivery_standard"),
	}, ValidateParams{Locale: domain.LocaleCS})

	if !res.IsValid {
		t.Fatalf("expected valid, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestValidateCustomTextRules(t *testing.T) {
	base := []domain.Customization{sel("size", "size_120")}
	withText := func(v string) []domain.Customization {
		return append(append([]domain.Customization{}, base...),
			sel("ribbon", "ribbon_yes"),
			sel("ribbon_color", "color_purple"),
			textSel("ribbon_text", "text_custom", v),
		)
	}

	t.Run("too long emits exact Czech message", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("A", 51)), ValidateParams{Locale: domain.LocaleCS})
		if !hasMessage(res.Errors, "Vlastní text může mít maximálně 50 znaků") {
			t.Fatalf("errors = %v", res.Errors)
		}
	})

	t.Run("exactly max passes with warning", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("A", 50)), ValidateParams{Locale: domain.LocaleEN})
		if !res.IsValid {
			t.Fatalf("50 runes should pass, errors = %v", res.Errors)
		}
		if !hasMessage(res.Warnings, "Custom text is approaching the 50 character limit") {
			t.Fatalf("warnings = %v", res.Warnings)
		}
	})

	t.Run("near limit warns at 45 of 50", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("A", 45)), ValidateParams{Locale: domain.LocaleEN})
		if !res.IsValid || len(res.Warnings) != 1 {
			t.Fatalf("valid=%v warnings=%v errors=%v", res.IsValid, res.Warnings, res.Errors)
		}
	})

	t.Run("below near-limit margin stays quiet", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("A", 44)), ValidateParams{Locale: domain.LocaleEN})
		if !res.IsValid || len(res.Warnings) != 0 {
			t.Fatalf("valid=%v warnings=%v", res.IsValid, res.Warnings)
		}
	})

	t.Run("strict promotes the warning", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("A", 45)), ValidateParams{Locale: domain.LocaleEN, Strict: true})
		if res.IsValid {
			t.Fatal("strict mode must fail a near-limit text")
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("warnings should be promoted, got %v", res.Warnings)
		}
	})

	t.Run("empty", func(t *testing.T) {
		res := validateAll(t, withText("   "), ValidateParams{Locale: domain.LocaleEN})
		if !hasMessage(res.Errors, "Custom text cannot be empty") {
			t.Fatalf("errors = %v", res.Errors)
		}
	})

	t.Run("too short", func(t *testing.T) {
		res := validateAll(t, withText("A"), ValidateParams{Locale: domain.LocaleEN})
		if !hasMessage(res.Errors, "Custom text must be at least 2 characters") {
			t.Fatalf("errors = %v", res.Errors)
		}
	})

	t.Run("angle brackets rejected", func(t *testing.T) {
		res := validateAll(t, withText("<script>alert</script>"), ValidateParams{Locale: domain.LocaleEN})
		if !hasMessage(res.Errors, "Custom text contains disallowed characters or content") {
			t.Fatalf("errors = %v", res.Errors)
		}
	})

	t.Run("profanity rejected in both languages", func(t *testing.T) {
		for _, text := range []string{"ty kurva jedna", "what the FUCK"} {
			res := validateAll(t, withText(text), ValidateParams{Locale: domain.LocaleEN})
			if !hasMessage(res.Errors, "Custom text contains disallowed characters or content") {
				t.Fatalf("%q: errors = %v", text, res.Errors)
			}
		}
	})

	t.Run("diacritics count as single characters", func(t *testing.T) {
		res := validateAll(t, withText(strings.Repeat("ž", 50)), ValidateParams{Locale: domain.LocaleEN})
		if !res.IsValid {
			t.Fatalf("50 Czech runes must pass, errors = %v", res.Errors)
		}
	})
}

func TestValidateUnavailableChoice(t *testing.T) {
	res := validateAll(t, []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_yes"),
		sel("ribbon_color", "color_gold"),
		sel("ribbon_text", "text_sympathy"),
	}, ValidateParams{Locale: domain.LocaleEN})

	if res.IsValid {
		t.Fatal("unavailable choice must fail validation")
	}
	if !hasMessage(res.Errors, "Gold is currently unavailable") {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestValidateSelectionCountBounds(t *testing.T) {
	two, three := 2, 3
	opts := []domain.CustomizationOption{{
		ID:            "flowers",
		Type:          domain.OptionTypeOther,
		Name:          domain.Localized{CS: "Květiny", EN: "Flowers"},
		MinSelections: &two,
		MaxSelections: &three,
		Choices: []domain.CustomizationChoice{
			{ID: "roses", Label: domain.Localized{EN: "Roses"}, Available: true},
			{ID: "lilies", Label: domain.Localized{EN: "Lilies"}, Available: true},
			{ID: "carnations", Label: domain.Localized{EN: "Carnations"}, Available: true},
			{ID: "chrysanthemums", Label: domain.Localized{EN: "Chrysanthemums"}, Available: true},
		},
	}}
	var e Engine

	res := e.Validate([]domain.Customization{sel("flowers", "roses")}, opts, ValidateParams{Locale: domain.LocaleEN})
	if !hasMessage(res.Errors, "Flowers: select at least 2 options (selected 1)") {
		t.Fatalf("min bound: errors = %v", res.Errors)
	}

	res = e.Validate([]domain.Customization{sel("flowers", "roses", "lilies", "carnations", "chrysanthemums")}, opts, ValidateParams{Locale: domain.LocaleEN})
	if !hasMessage(res.Errors, "Flowers: select at most 3 options (selected 4)") {
		t.Fatalf("max bound: errors = %v", res.Errors)
	}

	res = e.Validate([]domain.Customization{sel("flowers", "roses", "lilies")}, opts, ValidateParams{Locale: domain.LocaleEN})
	if !res.IsValid {
		t.Fatalf("in-bounds selection: errors = %v", res.Errors)
	}

	// The option is not required, so leaving it untouched is fine even
	// though MinSelections is set.
	res = e.Validate(nil, opts, ValidateParams{Locale: domain.LocaleEN})
	if !res.IsValid {
		t.Fatalf("empty optional selection: errors = %v", res.Errors)
	}
}

func TestValidateStaleHiddenSelectionIgnored(t *testing.T) {
	selections := []domain.Customization{
		sel("size", "size_120"),
		sel("ribbon", "ribbon_no"),
		// left over from before the shopper toggled the ribbon off
		sel("ribbon_color", "color_gold"),
		textSel("ribbon_text", "text_custom", strings.Repeat("x", 200)),
	}
	res := validateAll(t, selections, ValidateParams{Locale: domain.LocaleCS})
	if !res.IsValid {
		t.Fatalf("stale selections for hidden options must not fail validation, errors = %v", res.Errors)
	}
}

func TestValidateUnknownChoiceCountsAsEmpty(t *testing.T) {
	var events []DiagnosticEvent
	e := &Engine{Diag: func(ev DiagnosticEvent) { events = append(events, ev) }}
	opts := wreathOptions()

	res := e.Validate([]domain.Customization{sel("size", "size_999")}, VisibleOptions(opts, nil), ValidateParams{Locale: domain.LocaleEN})
	if !hasMessage(res.Errors, "Please select a wreath size before adding to cart") {
		t.Fatalf("unknown choice id should leave the option empty, errors = %v", res.Errors)
	}
	if len(events) != 1 || events[0].Kind != DiagUnknownChoice {
		t.Fatalf("expected one unknown-choice diagnostic, got %+v", events)
	}
}

func TestValidateDuplicateCustomizationFirstWins(t *testing.T) {
	res := validateAll(t, []domain.Customization{
		sel("size", "size_120"),
		sel("size"), // stale duplicate with nothing selected
	}, ValidateParams{Locale: domain.LocaleEN})
	if !res.IsValid {
		t.Fatalf("first record has a size selected, errors = %v", res.Errors)
	}
}

func TestValidateDeliveryDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	withDate := func(v string) []domain.Customization {
		return []domain.Customization{
			sel("size", "size_120"),
			textSel("delivery", "delivery_date", v),
		}
	}

	cases := []struct {
		name    string
		value   string
		wantErr string
		locale  domain.Locale
	}{
		{"within window", "2026-03-20", "", domain.LocaleEN},
		{"earliest day passes", "2026-03-12", "", domain.LocaleEN},
		{"latest day passes", "2026-04-09", "", domain.LocaleEN},
		{"missing date", "", "Please choose a delivery date", domain.LocaleEN},
		{"bad format", "20.3.2026", "Delivery date has an invalid format", domain.LocaleEN},
		{"too soon", "2026-03-11", "Earliest possible delivery is 2026-03-12", domain.LocaleEN},
		{"too late", "2026-04-10", "Latest possible delivery is 2026-04-09", domain.LocaleEN},
		{"too soon czech date format", "2026-03-11", "Doručení je možné nejdříve 12.3.2026", domain.LocaleCS},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := validateAll(t, withDate(c.value), ValidateParams{Locale: c.locale, Now: now})
			if c.wantErr == "" {
				if !res.IsValid {
					t.Fatalf("expected valid, errors = %v", res.Errors)
				}
				return
			}
			if !hasMessage(res.Errors, c.wantErr) {
				t.Fatalf("errors = %v, want %q", res.Errors, c.wantErr)
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	selections := []domain.Customization{
		sel("ribbon", "ribbon_yes"),
		textSel("ribbon_text", "text_custom", strings.Repeat("A", 47)),
	}
	opts := wreathOptions()
	visible := VisibleOptions(opts, selections)
	var e Engine

	p := ValidateParams{Locale: domain.LocaleCS, Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	first := e.Validate(selections, visible, p)
	second := e.Validate(selections, visible, p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation is not idempotent:\n%+v\n%+v", first, second)
	}
}
