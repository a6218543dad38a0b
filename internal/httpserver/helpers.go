package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/service"
)

// currentUserID reads the authenticated user's id set by the token
// middleware.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("userID")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, service.ErrUnauthenticated
	}
	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, service.ErrUnauthenticated
	}
	return userID, nil
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Store-level details stay in the log, not the response body.
func respondError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		l.Warn(op, "status", http.StatusUnauthorized, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidNotification):
		l.Warn(op, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "notification has no pending action"})
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", http.StatusNotFound, "error", err)
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrPermissionDenied):
		l.Warn(op, "status", http.StatusForbidden, "error", err)
		return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", http.StatusConflict, "error", err)
		return c.JSON(http.StatusConflict, echo.Map{"error": "operation conflicted, please retry"})
	default:
		l.Error(op, "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
