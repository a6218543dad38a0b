package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Hub    *live.Hub
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr("get cart", err)
	}
	return items, nil
}

// AddToCart creates the buyer's line for the product or bumps its
// quantity. A zero quantity means one.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, wrapStoreErr("add to cart", err)
	}
	if product.SellerID == userID {
		return nil, fmt.Errorf("cannot add your own listing: %w", ErrValidation)
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, wrapStoreErr("add to cart", err)
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), map[string]interface{}{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   item.Quantity,
	})
	notifyLive(s.Hub, userID, "cart", live.TypeUpdated, item)
	return &item, nil
}

// UpdateQuantity overwrites the stored quantity. A quantity of zero or
// less removes the line entirely; a zero quantity is never stored.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if productID == uuid.Nil {
		return fmt.Errorf("product_id required: %w", ErrValidation)
	}

	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	if err := s.Repo.SetQuantity(ctx, userID, productID, uint(quantity)); err != nil {
		return wrapStoreErr("update quantity", err)
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), map[string]interface{}{
		"type":       "cart_quantity_updated",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	notifyLive(s.Hub, userID, "cart", live.TypeUpdated, nil)
	return nil
}

// RemoveFromCart is idempotent: removing an absent line succeeds.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		return wrapStoreErr("remove from cart", err)
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), map[string]interface{}{
		"type":       "cart_item_removed",
		"user_id":    userID,
		"product_id": productID,
	})
	notifyLive(s.Hub, userID, "cart", live.TypeDeleted, nil)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return wrapStoreErr("clear cart", err)
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID.String(), map[string]interface{}{
		"type":    "cart_cleared",
		"user_id": userID,
	})
	notifyLive(s.Hub, userID, "cart", live.TypeDeleted, nil)
	return nil
}

// Summary recomputes the cart count and total from the current lines.
func (s *CartService) Summary(ctx context.Context, userID uuid.UUID) (repo.CartSummary, error) {
	if userID == uuid.Nil {
		return repo.CartSummary{}, ErrUnauthenticated
	}
	s2, err := s.Repo.Summary(ctx, userID)
	if err != nil {
		return repo.CartSummary{}, wrapStoreErr("cart summary", err)
	}
	return s2, nil
}
