package configurator

import "github.com/jhavlik/venceflor/internal/domain"

// VisibleOptions filters the product's option catalog down to the options
// the shopper should currently see. An option without a dependency is always
// visible; an option with DependsOn is visible only when the controlling
// option is itself visible and the shopper's selection for it intersects the
// required choice set.
//
// Visibility is resolved to a fixed point, so chained dependencies
// (text depends on color depends on ribbon) collapse correctly in one call.
// Options forming a dependency cycle never become visible. Catalog order is
// preserved; the inputs are not mutated.
func VisibleOptions(options []domain.CustomizationOption, selections []domain.Customization) []domain.CustomizationOption {
	visible := make(map[string]bool, len(options))
	for changed := true; changed; {
		changed = false
		for i := range options {
			opt := &options[i]
			want := opt.DependsOn == nil ||
				(visible[opt.DependsOn.OptionID] && dependencyMet(opt.DependsOn, selections))
			if want && !visible[opt.ID] {
				visible[opt.ID] = true
				changed = true
			}
		}
	}

	out := make([]domain.CustomizationOption, 0, len(options))
	for i := range options {
		if visible[options[i].ID] {
			out = append(out, options[i])
		}
	}
	return out
}

func dependencyMet(dep *domain.OptionDependency, selections []domain.Customization) bool {
	sel := domain.FindCustomization(selections, dep.OptionID)
	if sel == nil {
		return false
	}
	for _, id := range dep.RequiredChoiceIDs {
		if sel.Selected(id) {
			return true
		}
	}
	return false
}
