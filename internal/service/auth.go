package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/hash"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
)

type AuthService struct {
	Repo          *repo.GormRepo
	Events        Publisher
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}
	if name == "" {
		name = username
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("user already exists: %w", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStoreErr("register", err)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, wrapStoreErr("register", err)
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
		}
		return nil, wrapStoreErr("login", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	}

	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	refreshToken, err := SignRefreshToken(user.ID, user.Role, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.Repo.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: refreshExp.Unix(),
	}); err != nil {
		return nil, wrapStoreErr("login", err)
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return &LoginResult{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return wrapStoreErr("logout", err)
	}
	return nil
}
