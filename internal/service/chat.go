package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/repo"
)

type ChatService struct {
	Repo *repo.GormRepo
	Hub  *live.Hub
}

// ChatID derives the shared conversation id for two users. Both sides
// compute the same id regardless of who opens the chat.
func ChatID(a, b uuid.UUID) string {
	if a.String() < b.String() {
		return a.String() + "_" + b.String()
	}
	return b.String() + "_" + a.String()
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, text, imageURL string) (*models.Message, error) {
	if senderID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if recipientID == uuid.Nil {
		return nil, fmt.Errorf("recipient required: %w", ErrValidation)
	}
	if text == "" && imageURL == "" {
		return nil, fmt.Errorf("message text or image required: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByID(ctx, recipientID); err != nil {
		return nil, wrapStoreErr("send message", err)
	}

	message := models.Message{
		ChatID:   ChatID(senderID, recipientID),
		SenderID: senderID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := s.Repo.CreateMessage(ctx, &message); err != nil {
		return nil, wrapStoreErr("send message", err)
	}

	notifyLive(s.Hub, recipientID, "messages", live.TypeCreated, message)
	notifyLive(s.Hub, senderID, "messages", live.TypeCreated, message)
	return &message, nil
}

func (s *ChatService) ListMessages(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]models.Message, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if otherID == uuid.Nil {
		return nil, fmt.Errorf("chat partner required: %w", ErrValidation)
	}
	messages, err := s.Repo.ListMessages(ctx, ChatID(userID, otherID), limit, offset)
	if err != nil {
		return nil, wrapStoreErr("list messages", err)
	}
	return messages, nil
}
