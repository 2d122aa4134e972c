package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/configurator"
	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
)

// CartLine is one configured wreath in the cart. UnitPrice and the
// customization snapshot are frozen when the line is built; later catalog or
// price changes never touch an existing line.
type CartLine struct {
	ID             uuid.UUID              `json:"id"`
	ProductID      uuid.UUID              `json:"productId"`
	Slug           string                 `json:"slug"`
	Title          string                 `json:"title"`
	Qty            int                    `json:"qty"`
	UnitPrice      money.Money            `json:"unitPrice"`
	Customizations []domain.Customization `json:"customizations"`
}

// CartView is the aggregated cart the storefront renders.
type CartView struct {
	Lines          []CartViewLine `json:"lines"`
	Total          money.Money    `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
}

type CartViewLine struct {
	CartLine
	Subtotal money.Money `json:"subtotal"`
	Image    string      `json:"image,omitempty"`
}

// CartUC gates cart admission and aggregates cart lines for display.
type CartUC struct {
	Products domain.ProductRepo
	Engine   *configurator.Engine
}

// BuildLine validates the selections and, when they pass, freezes them
// together with the computed unit price into a cart line. An invalid
// selection is not an error: the line comes back nil and the validation
// result carries the localized messages the UI should show.
func (uc *CartUC) BuildLine(ctx context.Context, slug string, qty int, selections []domain.Customization, loc domain.Locale) (*CartLine, configurator.ValidationResult, error) {
	if qty <= 0 {
		return nil, configurator.ValidationResult{}, errors.New("quantity must be positive")
	}
	if loc == "" {
		loc = domain.LocaleCS
	}
	product, err := uc.Products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, configurator.ValidationResult{}, err
	}

	clean := configurator.SanitizeSelections(product.Options, selections)
	visible := configurator.VisibleOptions(product.Options, clean)
	validation := uc.Engine.Validate(clean, visible, configurator.ValidateParams{Locale: loc})
	if !validation.IsValid {
		return nil, validation, nil
	}

	quote := uc.Engine.Price(product.BasePrice, clean, visible, loc)
	line := &CartLine{
		ID:             uuid.New(),
		ProductID:      product.ID,
		Slug:           product.Slug,
		Title:          product.Name.Get(loc),
		Qty:            qty,
		UnitPrice:      quote.TotalPrice,
		Customizations: keepVisible(clean, visible),
	}
	return line, validation, nil
}

// keepVisible drops stale selections for hidden options so the frozen
// snapshot only contains what was actually priced.
func keepVisible(selections []domain.Customization, visible []domain.CustomizationOption) []domain.Customization {
	ids := make(map[string]bool, len(visible))
	for i := range visible {
		ids[visible[i].ID] = true
	}
	out := make([]domain.Customization, 0, len(selections))
	for _, s := range selections {
		if ids[s.OptionID] {
			out = append(out, s)
		}
	}
	return out
}

// Aggregate sums the stored lines into a renderable cart. Prices come from
// the line snapshots, never from the current catalog; the product lookup
// only refreshes the display image and drops lines whose product vanished.
func (uc *CartUC) Aggregate(ctx context.Context, lines []CartLine, loc domain.Locale) CartView {
	view := CartView{Lines: []CartViewLine{}}
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		vl := CartViewLine{CartLine: l, Subtotal: l.UnitPrice * money.Money(l.Qty)}
		if p, err := uc.Products.FindBySlug(ctx, l.Slug); err == nil && len(p.Images) > 0 {
			vl.Image = p.Images[0].URL
		}
		view.Lines = append(view.Lines, vl)
		view.Total += vl.Subtotal
	}
	view.FormattedTotal = money.Format(view.Total, string(loc))
	return view
}
