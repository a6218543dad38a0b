package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password, req.Name)
	if err != nil {
		return respondError(c, l, "register_error", err)
	}

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.Name,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	result, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, l, "login_error", err)
	}

	c.SetCookie(service.CreateCookie("accessToken", result.AccessToken, "/", result.AccessExp))
	c.SetCookie(service.CreateCookie("refreshToken", result.RefreshToken, "/", result.RefreshExp))

	l.Info("user logged in", "user_id", result.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"id":       result.User.ID,
		"username": result.User.Username,
		"name":     result.User.Name,
		"role":     result.User.Role,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			return respondError(c, l, "logout_error", err)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(service.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(service.CreateCookie("refreshToken", "", "/", expired))

	return c.NoContent(http.StatusNoContent)
}
