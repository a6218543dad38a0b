package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_added ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the line for (user, product) or creates it with
// status Unpaid. The increment and the existence check run in one
// transaction so two tabs adding at once cannot lose an update.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
				First(item).Error
		}

		item.Status = models.CartStatusUnpaid
		if item.DateAdded.IsZero() {
			item.DateAdded = time.Now().UTC()
		}
		return tx.Create(item).Error
	})
}

// SetQuantity overwrites the stored quantity of an existing line and
// touches no other field. The caller handles quantity <= 0 by removing
// the line instead; a zero or negative quantity is never stored.
func (r *GormRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity uint) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RemoveFromCart deletes the line unconditionally. Deleting an absent
// line is not an error.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// ClearCart deletes every line for the buyer in one statement.
func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

type CartSummary struct {
	Count uint    `json:"count"`
	Total float64 `json:"total"`
}

// Summary recomputes the derived cart values from the current line set
// on every call; they are never persisted.
func (r *GormRepo) Summary(ctx context.Context, userID uuid.UUID) (CartSummary, error) {
	var s CartSummary
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("COALESCE(SUM(cart_items.quantity), 0) AS count, COALESCE(SUM(cart_items.quantity * products.price), 0) AS total").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Scan(&s).Error
	return s, err
}
