package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

// ListNotifications returns the recipient's inbox newest first. Read
// and unread entries are intermixed; the read flag is for display
// emphasis only and never affects ordering.
func (r *GormRepo) ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *GormRepo) GetNotification(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *GormRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

// DeleteNotification removes the entry from the recipient's inbox. It
// has no cascading effect on any related purchase.
func (r *GormRepo) DeleteNotification(ctx context.Context, userID, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{}).Error
}

// MarkNotificationRead sets read to true. The flag only ever moves
// false -> true; there is no operation that resets it.
func (r *GormRepo) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
