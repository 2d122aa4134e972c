package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/domain"
)

// CatalogUC covers catalog reads for the storefront and catalog writes for
// the florist's admin panel.
type CatalogUC struct {
	Products domain.ProductRepo
	Featured domain.FeaturedRepo
}

func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, errors.New("empty slug")
	}
	return uc.Products.FindBySlug(ctx, slug)
}

func (uc *CatalogUC) Categories(ctx context.Context) ([]string, error) {
	return uc.Products.DistinctCategories(ctx)
}

func (uc *CatalogUC) FeaturedWreaths(ctx context.Context) ([]domain.Product, error) {
	if uc.Featured == nil {
		return []domain.Product{}, nil
	}
	return uc.Featured.GetWithProducts(ctx)
}

// Upsert creates or updates a product. New products get an id and a slug
// derived from the Czech name; the option catalog is checked for internal
// consistency before anything is written.
func (uc *CatalogUC) Upsert(ctx context.Context, p *domain.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	if strings.TrimSpace(p.Name.CS) == "" {
		return errors.New("czech name is required")
	}
	if p.BasePrice < 0 {
		return errors.New("negative base price")
	}
	if err := validateOptionCatalog(p.Options); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name.CS)
	}
	return uc.Products.Save(ctx, p)
}

func (uc *CatalogUC) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	if productID == uuid.Nil {
		return errors.New("product id")
	}
	return uc.Products.AddImages(ctx, productID, imgs)
}

func (uc *CatalogUC) DeleteBySlug(ctx context.Context, slug string) error {
	if slug == "" {
		return errors.New("empty slug")
	}
	return uc.Products.DeleteBySlug(ctx, slug)
}

// SetFeatured replaces the homepage rotation with the given products in the
// given order.
func (uc *CatalogUC) SetFeatured(ctx context.Context, productIDs []uuid.UUID) error {
	if uc.Featured == nil {
		return errors.New("featured repo not configured")
	}
	if err := uc.Featured.Clear(ctx); err != nil {
		return err
	}
	for i, id := range productIDs {
		if id == uuid.Nil {
			return errors.New("product id")
		}
		if err := uc.Featured.Save(ctx, id, i); err != nil {
			return err
		}
	}
	return nil
}

// validateOptionCatalog rejects catalogs the configurator cannot evaluate
// sanely: duplicate option or choice ids, dependencies pointing at options
// that do not exist, and inverted selection bounds.
func validateOptionCatalog(options []domain.CustomizationOption) error {
	ids := make(map[string]bool, len(options))
	for i := range options {
		opt := &options[i]
		if opt.ID == "" {
			return errors.New("option without id")
		}
		if ids[opt.ID] {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		ids[opt.ID] = true

		choiceIDs := make(map[string]bool, len(opt.Choices))
		for _, c := range opt.Choices {
			if c.ID == "" {
				return fmt.Errorf("option %q has a choice without id", opt.ID)
			}
			if choiceIDs[c.ID] {
				return fmt.Errorf("option %q has duplicate choice id %q", opt.ID, c.ID)
			}
			choiceIDs[c.ID] = true
		}
		if opt.MinSelections != nil && opt.MaxSelections != nil && *opt.MinSelections > *opt.MaxSelections {
			return fmt.Errorf("option %q has minSelections > maxSelections", opt.ID)
		}
	}
	for i := range options {
		dep := options[i].DependsOn
		if dep == nil {
			continue
		}
		if !ids[dep.OptionID] {
			return fmt.Errorf("option %q depends on unknown option %q", options[i].ID, dep.OptionID)
		}
		if dep.OptionID == options[i].ID {
			return fmt.Errorf("option %q depends on itself", options[i].ID)
		}
	}
	return nil
}

var slugReplacer = strings.NewReplacer(
	"á", "a", "č", "c", "ď", "d", "é", "e", "ě", "e", "í", "i", "ň", "n",
	"ó", "o", "ř", "r", "š", "s", "ť", "t", "ú", "u", "ů", "u", "ý", "y", "ž", "z",
)

// Slugify turns a Czech product name into a URL slug: lowercase, diacritics
// folded to ASCII, anything else collapsed into single hyphens.
func Slugify(name string) string {
	s := slugReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
