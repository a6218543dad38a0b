package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
)

type PurchaseService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Hub    *live.Hub
}

func validMethod(method string) bool {
	switch method {
	case models.PaymentMethodEwallet, models.PaymentMethodBanking, models.PaymentMethodCOD:
		return true
	}
	return false
}

// InitiatePurchase turns the buyer's cart line into a Pending purchase
// and notifies the seller, atomically. Payment is attestation-based:
// the chosen method records how the buyer claims to have settled, no
// funds move here. The operation is not idempotent by id, so a retry
// after success would create a second purchase; callers must not
// auto-retry without the buyer asking.
func (s *PurchaseService) InitiatePurchase(ctx context.Context, buyerID, productID uuid.UUID, method string) (*models.Purchase, error) {
	if buyerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("unknown payment method %q: %w", method, ErrValidation)
	}

	buyer, err := s.Repo.GetUserByID(ctx, buyerID)
	if err != nil {
		return nil, wrapStoreErr("initiate purchase", err)
	}

	purchase, notification, err := s.Repo.InitiatePurchase(ctx, *buyer, productID, method)
	if err != nil {
		return nil, wrapStoreErr("initiate purchase", err)
	}

	publish(ctx, s.Events, mykafka.TopicPurchaseEvents, purchase.ID.String(), map[string]interface{}{
		"type":        "purchase_initiated",
		"purchase_id": purchase.ID,
		"buyer_id":    buyerID,
		"seller_id":   purchase.SellerID,
		"product_id":  productID,
		"method":      method,
	})
	notifyLive(s.Hub, buyerID, "cart", live.TypeDeleted, nil)
	notifyLive(s.Hub, buyerID, "purchases", live.TypeCreated, purchase)
	notifyLive(s.Hub, purchase.SellerID, "notifications", live.TypeCreated, notification)

	return purchase, nil
}

// ConfirmTransaction is the seller accepting a pending purchase. The
// purchase flips to Successful and the notification's action is
// retired in the same transaction; confirming an already-confirmed
// notification is a no-op surfaced as ErrInvalidNotification.
func (s *PurchaseService) ConfirmTransaction(ctx context.Context, sellerID, notificationID uuid.UUID) (*models.Notification, error) {
	if sellerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if notificationID == uuid.Nil {
		return nil, fmt.Errorf("notification_id required: %w", ErrValidation)
	}

	notification, err := s.Repo.ConfirmTransaction(ctx, sellerID, notificationID)
	if err != nil {
		if errors.Is(err, repo.ErrNoConfirmAction) {
			return nil, fmt.Errorf("confirm transaction: %w", ErrInvalidNotification)
		}
		return nil, wrapStoreErr("confirm transaction", err)
	}

	publish(ctx, s.Events, mykafka.TopicPurchaseEvents, notification.PurchaseID.String(), map[string]interface{}{
		"type":        "purchase_confirmed",
		"purchase_id": notification.PurchaseID,
		"buyer_id":    notification.BuyerID,
		"seller_id":   sellerID,
	})
	notifyLive(s.Hub, sellerID, "notifications", live.TypeUpdated, notification)
	notifyLive(s.Hub, notification.BuyerID, "purchases", live.TypeUpdated, nil)

	return notification, nil
}

// History is the buyer's purchase record, newest first.
func (s *PurchaseService) History(ctx context.Context, buyerID uuid.UUID) ([]models.Purchase, error) {
	if buyerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	purchases, err := s.Repo.ListPurchases(ctx, buyerID)
	if err != nil {
		return nil, wrapStoreErr("purchase history", err)
	}
	return purchases, nil
}

// Sales lists the seller's confirmed sales: purchases by any buyer
// where this user is the seller and the status is Successful.
func (s *PurchaseService) Sales(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error) {
	if sellerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	sales, err := s.Repo.ListSales(ctx, sellerID)
	if err != nil {
		return nil, wrapStoreErr("sales", err)
	}
	return sales, nil
}
