package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
)

func newCartEnv(t *testing.T) (*CartService, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	return &CartService{Repo: newTestRepo(t), Events: rec}, rec
}

func TestCartService_AddToCart_CreatesLine(t *testing.T) {
	t.Parallel()

	svc, rec := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "calculus textbook", 25)

	item, err := svc.AddToCart(ctx, buyer.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), item.Quantity)
	assert.Equal(t, models.CartStatusUnpaid, item.Status)
	assert.False(t, item.DateAdded.IsZero())

	lines := cartLines(t, svc.Repo.DB, buyer.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, product.ID, lines[0].ProductID)

	events := rec.byTopic(mykafka.TopicCartEvents)
	require.Len(t, events, 1)
}

func TestCartService_AddToCart_SameProductIncrementsQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "desk lamp", 10)

	_, err := svc.AddToCart(ctx, buyer.ID, product.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddToCart(ctx, buyer.ID, product.ID, 3)
	require.NoError(t, err)

	// One line per (user, product); quantities accumulate.
	assert.Equal(t, uint(5), item.Quantity)
	lines := cartLines(t, svc.Repo.DB, buyer.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(5), lines[0].Quantity)
}

func TestCartService_AddToCart_ZeroQuantityMeansOne(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "bike helmet", 15)

	item, err := svc.AddToCart(ctx, buyer.ID, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.Quantity)
}

func TestCartService_AddToCart_OwnListingRejected(t *testing.T) {
	t.Parallel()

	svc, rec := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	product := seedProduct(t, svc.Repo.DB, seller, "own thing", 5)

	_, err := svc.AddToCart(ctx, seller.ID, product.ID, 1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, cartLines(t, svc.Repo.DB, seller.ID))
	assert.Empty(t, rec.byTopic(mykafka.TopicCartEvents))
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")

	_, err := svc.AddToCart(context.Background(), buyer.ID, uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()

	_, err := svc.GetCart(ctx, uuid.Nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.AddToCart(ctx, uuid.Nil, uuid.New(), 1)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, svc.UpdateQuantity(ctx, uuid.Nil, uuid.New(), 1), ErrUnauthenticated)
	require.ErrorIs(t, svc.RemoveFromCart(ctx, uuid.Nil, uuid.New()), ErrUnauthenticated)
	require.ErrorIs(t, svc.ClearCart(ctx, uuid.Nil), ErrUnauthenticated)
	_, err = svc.Summary(ctx, uuid.Nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCartService_UpdateQuantity_Overwrites(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "headphones", 30)
	seedCartItem(t, svc.Repo.DB, buyer, product, 2)

	require.NoError(t, svc.UpdateQuantity(ctx, buyer.ID, product.ID, 7))

	lines := cartLines(t, svc.Repo.DB, buyer.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(7), lines[0].Quantity)
	// Status is untouched by a quantity update.
	assert.Equal(t, models.CartStatusUnpaid, lines[0].Status)
}

func TestCartService_UpdateQuantity_ZeroDeletesLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "notebook", 3)
	seedCartItem(t, svc.Repo.DB, buyer, product, 2)

	require.NoError(t, svc.UpdateQuantity(ctx, buyer.ID, product.ID, 0))
	assert.Empty(t, cartLines(t, svc.Repo.DB, buyer.ID))

	// Negative behaves the same and is still not an error.
	require.NoError(t, svc.UpdateQuantity(ctx, buyer.ID, product.ID, -4))
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")

	err := svc.UpdateQuantity(context.Background(), buyer.ID, uuid.New(), 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_RemoveFromCart_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	product := seedProduct(t, svc.Repo.DB, seller, "poster", 4)
	seedCartItem(t, svc.Repo.DB, buyer, product, 1)

	require.NoError(t, svc.RemoveFromCart(ctx, buyer.ID, product.ID))
	require.NoError(t, svc.RemoveFromCart(ctx, buyer.ID, product.ID))
	assert.Empty(t, cartLines(t, svc.Repo.DB, buyer.ID))
}

func TestCartService_ClearCart(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	other := seedUser(t, svc.Repo.DB, "other", "Other")
	p1 := seedProduct(t, svc.Repo.DB, seller, "p1", 1)
	p2 := seedProduct(t, svc.Repo.DB, seller, "p2", 2)
	seedCartItem(t, svc.Repo.DB, buyer, p1, 1)
	seedCartItem(t, svc.Repo.DB, buyer, p2, 1)
	seedCartItem(t, svc.Repo.DB, other, p1, 1)

	require.NoError(t, svc.ClearCart(ctx, buyer.ID))
	assert.Empty(t, cartLines(t, svc.Repo.DB, buyer.ID))
	// Other buyers' carts are untouched.
	assert.Len(t, cartLines(t, svc.Repo.DB, other.ID), 1)
}

func TestCartService_Summary_RecomputedFromLines(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	cheap := seedProduct(t, svc.Repo.DB, seller, "pen", 1.5)
	pricey := seedProduct(t, svc.Repo.DB, seller, "monitor", 120)

	summary, err := svc.Summary(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Total)

	seedCartItem(t, svc.Repo.DB, buyer, cheap, 4)
	seedCartItem(t, svc.Repo.DB, buyer, pricey, 1)

	summary, err = svc.Summary(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), summary.Count)
	assert.InDelta(t, 126, summary.Total, 1e-9)

	require.NoError(t, svc.RemoveFromCart(ctx, buyer.ID, pricey.ID))

	summary, err = svc.Summary(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), summary.Count)
	assert.InDelta(t, 6, summary.Total, 1e-9)
}

func TestCartService_GetCart_OrderedByDateAdded(t *testing.T) {
	t.Parallel()

	svc, _ := newCartEnv(t)
	ctx := context.Background()
	seller := seedUser(t, svc.Repo.DB, "seller", "Seller")
	buyer := seedUser(t, svc.Repo.DB, "buyer", "Buyer")
	first := seedProduct(t, svc.Repo.DB, seller, "first", 1)
	second := seedProduct(t, svc.Repo.DB, seller, "second", 2)

	_, err := svc.AddToCart(ctx, buyer.ID, first.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, buyer.ID, second.ID, 1)
	require.NoError(t, err)

	items, err := svc.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ProductID)
	assert.Equal(t, second.ID, items[1].ProductID)
}
