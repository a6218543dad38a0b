package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

type ProductFilter struct {
	Category string
	SellerID uuid.UUID
	PriceMin *float64
	PriceMax *float64
	Sort     string
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	if f.SellerID != uuid.Nil {
		q = q.Where("seller_id = ?", f.SellerID)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	switch f.Sort {
	case "price-asc":
		q = q.Order("price ASC")
	case "price-desc":
		q = q.Order("price DESC")
	case "date-asc":
		q = q.Order("date_added ASC")
	default:
		q = q.Order("date_added DESC")
	}

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// PatchProduct updates only the given fields of an existing listing.
func (r *GormRepo) PatchProduct(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Product, error) {
	var p models.Product
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
