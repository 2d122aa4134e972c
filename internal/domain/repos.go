package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type ProductFilter struct {
	Page     int
	PageSize int
	Sort     string // price_asc, price_desc, newest; default name
	Query    string
	Category string
	Active   *bool
}

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	AddImages(ctx context.Context, productID uuid.UUID, imgs []Image) error
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type OrderFilter struct {
	Page     int
	PageSize int
	Status   OrderStatus
	Email    string
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

type FeaturedRepo interface {
	Save(ctx context.Context, productID uuid.UUID, displayOrder int) error
	Clear(ctx context.Context) error
	GetWithProducts(ctx context.Context) ([]Product, error)
}
