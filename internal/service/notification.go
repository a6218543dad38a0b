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

type NotificationService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Hub    *live.Hub
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	notifications, err := s.Repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr("list notifications", err)
	}
	return notifications, nil
}

// Delete is inbox housekeeping only: the related purchase, if any,
// keeps its current status. A pending purchase whose confirmation
// notification is deleted stays Pending with no path to resolution;
// see DESIGN.md for why that behavior is kept as-is.
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if id == uuid.Nil {
		return fmt.Errorf("notification id required: %w", ErrValidation)
	}
	if err := s.Repo.DeleteNotification(ctx, userID, id); err != nil {
		return wrapStoreErr("delete notification", err)
	}

	publish(ctx, s.Events, mykafka.TopicNotificationEvents, userID.String(), map[string]interface{}{
		"type":            "notification_deleted",
		"user_id":         userID,
		"notification_id": id,
	})
	notifyLive(s.Hub, userID, "notifications", live.TypeDeleted, nil)
	return nil
}

// MarkRead flips the read flag to true; it never goes back.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	if err := s.Repo.MarkNotificationRead(ctx, userID, id); err != nil {
		return wrapStoreErr("mark notification read", err)
	}
	notifyLive(s.Hub, userID, "notifications", live.TypeUpdated, nil)
	return nil
}
