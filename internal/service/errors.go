package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/repo"
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")       // 401
	ErrValidation          = errors.New("validation")            // 400
	ErrNotFound            = errors.New("not found")             // 404
	ErrInvalidNotification = errors.New("invalid notification")  // 400, no-op
	ErrConflict            = errors.New("conflict")              // 409, retryable by the user
	ErrPermissionDenied    = errors.New("permission denied")     // 403, not retryable
)

// wrapStoreErr converts store-level failures into the service taxonomy
// at the boundary; raw driver errors never reach HTTP callers.
func wrapStoreErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case repo.IsConflict(err):
		return fmt.Errorf("%s failed after retries: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Publisher is the durable event stream mutations are reported to.
// *mykafka.Producer implements it; tests inject a recorder.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

// publish reports a committed mutation. Delivery failures are logged
// and never fail the user operation.
func publish(ctx context.Context, events Publisher, topic, key string, event interface{}) {
	if events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := events.PublishEvent(pctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}

func notifyLive(hub *live.Hub, userID uuid.UUID, collection, typ string, payload interface{}) {
	if hub == nil {
		return
	}
	hub.Publish(userID, live.Event{Collection: collection, Type: typ, Payload: payload})
}
