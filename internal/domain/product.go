package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhavlik/venceflor/internal/money"
)

type Product struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string      `gorm:"uniqueIndex;size:140" json:"slug"`
	Name        Localized   `gorm:"type:jsonb;serializer:json" json:"name"`
	Description Localized   `gorm:"type:jsonb;serializer:json" json:"description"`
	Category    string      `gorm:"size:100;index" json:"category"`
	BasePrice   money.Money `gorm:"not null" json:"basePrice"` // minor units
	Active      bool        `gorm:"default:true;index" json:"active"`

	// Options is the read-only customization catalog for this product,
	// stored as a single jsonb document.
	Options []CustomizationOption `gorm:"type:jsonb;serializer:json" json:"customizationOptions"`

	Images    []Image   `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Option returns the customization option with the given id, or nil.
func (p *Product) Option(id string) *CustomizationOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	URL       string    `gorm:"size:255" json:"url"`
	Alt       Localized `gorm:"type:jsonb;serializer:json" json:"alt"`
	CreatedAt time.Time `json:"-"`
}

// FeaturedWreath pins a product into the homepage rotation.
type FeaturedWreath struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"productId"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	CreatedAt    time.Time `json:"-"`
}
