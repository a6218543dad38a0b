package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/repo"
)

type TokenService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// RotateToken exchanges a valid refresh token for a fresh access and
// refresh pair, persisting the new refresh token.
func (t *TokenService) RotateToken(c echo.Context, rawToken string) (string, string, time.Time, time.Time, error) {
	ctx := c.Request().Context()

	claims, err := ValidateRefresh(ctx, rawToken, t.RefreshSecret, t.Repo)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}

	userID, err := claimsSubject(claims)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}
	role, _ := claims["role"].(string)

	accessExp := time.Now().Add(accessTokenTTL)
	newAccess, err := SignAccessToken(userID, role, t.JWTSecret, accessExp)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	newRefresh, err := SignRefreshToken(userID, role, t.RefreshSecret, refreshExp)
	if err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}

	if err := t.Repo.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     newRefresh,
		UserID:    userID,
		Role:      role,
		ExpiresAt: refreshExp.Unix(),
	}); err != nil {
		return "", "", time.Time{}, time.Time{}, err
	}

	return newAccess, newRefresh, accessExp, refreshExp, nil
}

// AutoRefreshMiddleware authenticates requests from the access cookie
// and transparently rotates an expired access token off the refresh
// cookie. On success the user id and role land in the echo context.
func (t *TokenService) AutoRefreshMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		asCookie, err := c.Cookie("accessToken")
		if err == nil {
			token, err := jwt.Parse(asCookie.Value, func(j *jwt.Token) (interface{}, error) {
				return t.JWTSecret, nil
			})
			if err == nil && token.Valid {
				setUserContext(c, token.Claims.(jwt.MapClaims))
				return next(c)
			}
			if !errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
		}

		rfCookie, err := c.Cookie("refreshToken")
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		newAccess, newRefresh, accessExp, refreshExp, err := t.RotateToken(c, rfCookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "cannot rotate token: "+err.Error())
		}

		c.SetCookie(CreateCookie("accessToken", newAccess, "/", accessExp))
		c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", refreshExp))

		token, _ := jwt.Parse(newAccess, func(j *jwt.Token) (interface{}, error) { return t.JWTSecret, nil })
		setUserContext(c, token.Claims.(jwt.MapClaims))
		return next(c)
	}
}

// AdminOnly wraps AutoRefreshMiddleware and additionally requires the
// admin role.
func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return t.AutoRefreshMiddleware(func(c echo.Context) error {
		if role, _ := c.Get("role").(string); role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	})
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set("userID", sub)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
