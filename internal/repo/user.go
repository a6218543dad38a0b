package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepo) SaveRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}
