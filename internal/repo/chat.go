package repo

import (
	"context"
	"time"

	"github.com/campusmart/campus_market/internal/models"
)

func (r *GormRepo) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(m).Error
}

// ListMessages returns a conversation oldest first, the order the chat
// view renders it in.
func (r *GormRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
