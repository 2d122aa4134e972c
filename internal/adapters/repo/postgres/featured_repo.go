package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jhavlik/venceflor/internal/domain"
)

type FeaturedRepo struct{ db *gorm.DB }

func NewFeaturedRepo(db *gorm.DB) *FeaturedRepo { return &FeaturedRepo{db: db} }

// Save pins a product into the rotation, updating the slot when the
// product is already featured.
func (r *FeaturedRepo) Save(ctx context.Context, productID uuid.UUID, displayOrder int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.FeaturedWreath
		err := tx.Where("product_id = ?", productID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Update("display_order", displayOrder).Error
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&domain.FeaturedWreath{
				ID:           uuid.New(),
				ProductID:    productID,
				DisplayOrder: displayOrder,
				CreatedAt:    time.Now(),
			}).Error
		}
		return err
	})
}

func (r *FeaturedRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.FeaturedWreath{}).Error
}

// GetWithProducts returns the full products behind the rotation, ordered by
// display order. Inactive products are filtered out.
func (r *FeaturedRepo) GetWithProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*").
		Joins("INNER JOIN featured_wreaths ON products.id = featured_wreaths.product_id").
		Where("products.active = ?", true).
		Order("featured_wreaths.display_order asc").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
