package service

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/es"
	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Events Publisher
	ES     *elasticsearch.Client
	Index  string
}

func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, p *models.Product) (*models.Product, error) {
	if sellerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	seller, err := s.Repo.GetUserByID(ctx, sellerID)
	if err != nil {
		return nil, wrapStoreErr("create product", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}

	p.SellerID = seller.ID
	p.SellerName = seller.Name
	p.SellerAvatar = seller.AvatarURL
	if p.DateAdded.IsZero() {
		p.DateAdded = time.Now().UTC()
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, wrapStoreErr("create product", err)
	}

	s.index(ctx, *p)
	publish(ctx, s.Events, mykafka.TopicProductEvents, p.ID.String(), map[string]interface{}{
		"type":       "product_created",
		"product_id": p.ID,
		"seller_id":  p.SellerID,
	})
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("get product", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, f repo.ProductFilter, limit, offset int) ([]models.Product, error) {
	products, err := s.Repo.ListProducts(ctx, f, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("list products", err)
	}
	return products, nil
}

// Patch updates a listing's own fields. Only the owner (or an admin)
// may modify it.
func (s *ProductService) Patch(ctx context.Context, actorID uuid.UUID, id uuid.UUID, fields map[string]interface{}) (*models.Product, error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	actor, err := s.Repo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, wrapStoreErr("patch product", err)
	}

	existing, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("patch product", err)
	}
	if existing.SellerID != actor.ID && actor.Role != "admin" {
		return nil, fmt.Errorf("not the owner of this listing: %w", ErrPermissionDenied)
	}

	p, err := s.Repo.PatchProduct(ctx, id, fields)
	if err != nil {
		return nil, wrapStoreErr("patch product", err)
	}

	s.index(ctx, *p)
	publish(ctx, s.Events, mykafka.TopicProductEvents, p.ID.String(), map[string]interface{}{
		"type":       "product_updated",
		"product_id": p.ID,
	})
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrUnauthenticated
	}
	actor, err := s.Repo.GetUserByID(ctx, actorID)
	if err != nil {
		return wrapStoreErr("delete product", err)
	}

	existing, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return wrapStoreErr("delete product", err)
	}
	if existing.SellerID != actor.ID && actor.Role != "admin" {
		return fmt.Errorf("not the owner of this listing: %w", ErrPermissionDenied)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return wrapStoreErr("delete product", err)
	}

	s.deindex(ctx, id)
	publish(ctx, s.Events, mykafka.TopicProductEvents, id.String(), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})
	return nil
}

// index mirrors the listing into the search index. Search staleness is
// tolerable, so indexing failures are logged and do not fail the write.
func (s *ProductService) index(ctx context.Context, p models.Product) {
	if s.ES == nil {
		return
	}
	if err := es.IndexProduct(ctx, s.ES, s.Index, p); err != nil {
		logging.FromContext(ctx).Error("product index failed", "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) deindex(ctx context.Context, id uuid.UUID) {
	if s.ES == nil {
		return
	}
	if err := es.DeleteProduct(ctx, s.ES, s.Index, id.String()); err != nil {
		logging.FromContext(ctx).Error("product deindex failed", "product_id", id, "error", err)
	}
}
