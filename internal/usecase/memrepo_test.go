package usecase

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/domain"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memProductRepo struct {
	bySlug map[string]*domain.Product
}

func newMemProductRepo(products ...*domain.Product) *memProductRepo {
	r := &memProductRepo{bySlug: map[string]*domain.Product{}}
	for _, p := range products {
		r.bySlug[p.Slug] = p
	}
	return r
}

func (r *memProductRepo) Save(ctx context.Context, p *domain.Product) error {
	r.bySlug[p.Slug] = p
	return nil
}

func (r *memProductRepo) AddImages(ctx context.Context, productID uuid.UUID, imgs []domain.Image) error {
	for _, p := range r.bySlug {
		if p.ID == productID {
			p.Images = append(p.Images, imgs...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range r.bySlug {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, int64(len(out)), nil
}

func (r *memProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	cats := []string{}
	for _, p := range r.bySlug {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (r *memProductRepo) DeleteBySlug(ctx context.Context, slug string) error {
	delete(r.bySlug, slug)
	return nil
}

type memOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
	saves  int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *memOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	r.saves++
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Email != "" && o.Email != f.Email {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type memCustomerRepo struct {
	byEmail map[string]*domain.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byEmail: map[string]*domain.Customer{}}
}

func (r *memCustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	cp := *c
	r.byEmail[c.Email] = &cp
	return nil
}

type memFeaturedRepo struct {
	products *memProductRepo
	order    []uuid.UUID
}

func (r *memFeaturedRepo) Save(ctx context.Context, productID uuid.UUID, displayOrder int) error {
	r.order = append(r.order, productID)
	return nil
}

func (r *memFeaturedRepo) Clear(ctx context.Context) error {
	r.order = nil
	return nil
}

func (r *memFeaturedRepo) GetWithProducts(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range r.order {
		for _, p := range r.products.bySlug {
			if p.ID == id && p.Active {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// wreathProduct is the catalog entry the usecase tests configure: a 1 200 Kč
// wreath with a required size, ribbon with dependent color/text, and
// delivery choices.
func wreathProduct() *domain.Product {
	return &domain.Product{
		ID:        uuid.New(),
		Slug:      "smutecni-venec-ruze",
		Name:      domain.Localized{CS: "Smuteční věnec z růží", EN: "Funeral wreath of roses"},
		Category:  "wreaths",
		BasePrice: 120000,
		Active:    true,
		Options: []domain.CustomizationOption{
			{
				ID:       "size",
				Type:     domain.OptionTypeSize,
				Name:     domain.Localized{CS: "Velikost věnce", EN: "Wreath size"},
				Required: true,
				Choices: []domain.CustomizationChoice{
					{ID: "size_120", Label: domain.Localized{CS: "120 cm", EN: "120 cm"}, Available: true},
					{ID: "size_150", Label: domain.Localized{CS: "150 cm", EN: "150 cm"}, PriceModifier: 50000, Available: true},
				},
			},
			{
				ID:   "ribbon",
				Type: domain.OptionTypeRibbon,
				Name: domain.Localized{CS: "Stuha", EN: "Ribbon"},
				Choices: []domain.CustomizationChoice{
					{ID: "ribbon_yes", Label: domain.Localized{CS: "Se stuhou", EN: "With ribbon"}, PriceModifier: 15000, Available: true},
					{ID: "ribbon_no", Label: domain.Localized{CS: "Bez stuhy", EN: "No ribbon"}, Available: true},
				},
			},
			{
				ID:        "ribbon_color",
				Type:      domain.OptionTypeRibbonColor,
				Name:      domain.Localized{CS: "Barva stuhy", EN: "Ribbon color"},
				DependsOn: &domain.OptionDependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
				Choices: []domain.CustomizationChoice{
					{ID: "color_black", Label: domain.Localized{CS: "Černá", EN: "Black"}, Available: true},
				},
			},
			{
				ID:        "ribbon_text",
				Type:      domain.OptionTypeRibbonText,
				Name:      domain.Localized{CS: "Text stuhy", EN: "Ribbon text"},
				DependsOn: &domain.OptionDependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
				Choices: []domain.CustomizationChoice{
					{ID: "text_sympathy", Label: domain.Localized{CS: "Upřímnou soustrast", EN: "Deepest sympathy"}, Available: true},
					{ID: "text_custom", Label: domain.Localized{CS: "Vlastní text", EN: "Custom text"}, PriceModifier: 10000, Available: true, AllowCustomInput: true, MaxLength: 50},
				},
			},
		},
	}
}

func pick(optionID string, choiceIDs ...string) domain.Customization {
	return domain.Customization{OptionID: optionID, ChoiceIDs: choiceIDs}
}
