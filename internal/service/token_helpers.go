package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/repo"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func SignAccessToken(userID uuid.UUID, role string, secret []byte, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func SignRefreshToken(userID uuid.UUID, role string, secret []byte, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ValidateRefresh checks the signature, the refresh type claim and the
// stored token's revocation state.
func ValidateRefresh(ctx context.Context, rawToken string, refreshSecret []byte, r *repo.GormRepo) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return refreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	stored, err := r.GetRefreshToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

func claimsSubject(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}
