package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

// ErrNoConfirmAction is returned when a confirmation targets a
// notification whose action has already been consumed or that never
// carried one. Confirming twice surfaces this and changes nothing.
var ErrNoConfirmAction = errors.New("notification has no pending confirmation")

// InitiatePurchase converts the buyer's cart line for productID into a
// Pending purchase plus a seller notification, and removes the line,
// all in one transaction. There is no state in which the line and the
// purchase both exist, or in which only some of the three writes are
// visible.
func (r *GormRepo) InitiatePurchase(ctx context.Context, buyer models.User, productID uuid.UUID, method string) (*models.Purchase, *models.Notification, error) {
	var purchase models.Purchase
	var notification models.Notification

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		var line models.CartItem
		if err := lockForUpdate(tx).
			Where("user_id = ? AND product_id = ?", buyer.ID, productID).
			First(&line).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		image := ""
		if len(product.ImageURLs) > 0 {
			image = product.ImageURLs[0]
		}

		purchase = models.Purchase{
			BuyerID:      buyer.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: image,
			Price:        product.Price,
			SellerID:     product.SellerID,
			SellerName:   product.SellerName,
			BuyerName:    buyer.Name,
			PurchaseDate: now,
			Status:       models.PurchaseStatusPending,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND product_id = ?", buyer.ID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		title := "Payment Received - Action Required"
		if method == models.PaymentMethodCOD {
			title = "Cash on Delivery Request"
		}
		notification = models.Notification{
			UserID:     product.SellerID,
			Title:      title,
			Message:    fmt.Sprintf("A buyer has initiated a purchase for your item: %q. Please confirm the transaction to proceed.", product.Name),
			Date:       now,
			Read:       false,
			ActionURL:  "/inbox",
			ActionType: models.ActionConfirmTransaction,
			BuyerID:    buyer.ID,
			ProductID:  product.ID,
			PurchaseID: purchase.ID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &purchase, &notification, nil
}

// ConfirmTransaction flips the buyer's purchase to Successful and
// retires the seller notification's action in one transaction. A
// notification without a live confirm action yields ErrNoConfirmAction
// and no writes, which makes a double confirmation harmless.
func (r *GormRepo) ConfirmTransaction(ctx context.Context, sellerID, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("id = ? AND user_id = ?", notificationID, sellerID).
			First(&notification).Error; err != nil {
			return err
		}

		if notification.ActionType != models.ActionConfirmTransaction ||
			notification.BuyerID == uuid.Nil ||
			notification.PurchaseID == uuid.Nil {
			return ErrNoConfirmAction
		}

		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND buyer_id = ? AND status = ?",
				notification.PurchaseID, notification.BuyerID, models.PurchaseStatusPending).
			Update("status", models.PurchaseStatusSuccessful)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.Notification{}).
			Where("id = ?", notification.ID).
			Updates(map[string]interface{}{"read": true, "action_type": ""}).Error; err != nil {
			return err
		}
		notification.Read = true
		notification.ActionType = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListPurchases is the buyer's purchase history, newest first.
func (r *GormRepo) ListPurchases(ctx context.Context, buyerID uuid.UUID) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.DB.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("purchase_date DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListSales returns confirmed sales for a seller: purchases across all
// buyers where the seller matches and the status is Successful.
func (r *GormRepo) ListSales(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error) {
	var sales []models.Purchase
	if err := r.DB.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, models.PurchaseStatusSuccessful).
		Order("purchase_date DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *GormRepo) GetPurchase(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}
