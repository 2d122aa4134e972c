package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhavlik/venceflor/internal/configurator"
	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
)

// ConfigureUC runs the configurator pipeline for one product: sanitize the
// shopper's selections, resolve which options are visible, validate, price.
// It is stateless; the storefront calls it on every selection change.
type ConfigureUC struct {
	Products domain.ProductRepo
	Engine   *configurator.Engine
}

type ConfigureParams struct {
	Locale domain.Locale
	Strict bool
	Now    time.Time
}

// ConfigureResult is everything the configurator UI needs to re-render.
type ConfigureResult struct {
	Slug           string                        `json:"slug"`
	BasePrice      money.Money                   `json:"basePrice"`
	Selections     []domain.Customization        `json:"selections"`
	VisibleOptions []domain.CustomizationOption  `json:"visibleOptions"`
	Validation     configurator.ValidationResult `json:"validation"`
	Quote          configurator.Quote            `json:"quote"`
	FormattedTotal string                        `json:"formattedTotal"`
}

func (uc *ConfigureUC) Configure(ctx context.Context, slug string, selections []domain.Customization, p ConfigureParams) (*ConfigureResult, error) {
	if slug == "" {
		return nil, errors.New("empty slug")
	}
	if p.Locale == "" {
		p.Locale = domain.LocaleCS
	}
	product, err := uc.Products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	clean := configurator.SanitizeSelections(product.Options, selections)
	visible := configurator.VisibleOptions(product.Options, clean)
	validation := uc.Engine.Validate(clean, visible, configurator.ValidateParams{
		Locale: p.Locale,
		Strict: p.Strict,
		Now:    p.Now,
	})
	quote := uc.Engine.Price(product.BasePrice, clean, visible, p.Locale)

	return &ConfigureResult{
		Slug:           product.Slug,
		BasePrice:      product.BasePrice,
		Selections:     clean,
		VisibleOptions: visible,
		Validation:     validation,
		Quote:          quote,
		FormattedTotal: money.Format(quote.TotalPrice, string(p.Locale)),
	}, nil
}
