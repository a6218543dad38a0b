package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campusmart/campus_market/internal/config"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

type recordedEvent struct {
	Topic string
	Key   string
	Event interface{}
}

// eventRecorder stands in for the kafka producer in tests.
type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *eventRecorder) byTopic(topic string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, ev := range r.events {
		if ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}

func seedUser(t *testing.T, db *gorm.DB, username, name string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Name:         name,
		Role:         "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, seller models.User, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: "test listing",
		Price:       price,
		Category:    "books",
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		ImageURLs:   []string{"https://img.example/" + name + ".jpg"},
		DateAdded:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCartItem(t *testing.T, db *gorm.DB, user models.User, product models.Product, quantity uint) models.CartItem {
	t.Helper()
	item := models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		Status:    models.CartStatusUnpaid,
		DateAdded: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func cartLines(t *testing.T, db *gorm.DB, userID uuid.UUID) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Order("date_added ASC").Find(&items).Error)
	return items
}
