package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
	Hub *live.Hub
}

func (h *NotificationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.notifications")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "list_notifications_error", err)
	}

	notifications, err := h.Svc.List(ctx, userID)
	if err != nil {
		return respondError(c, l, "list_notifications_error", err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.notification")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "delete_notification_error", err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_notification_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return respondError(c, l, "delete_notification_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "read.notification")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "mark_read_error", err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("mark_read_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	if err := h.Svc.MarkRead(ctx, userID, id); err != nil {
		return respondError(c, l, "mark_read_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Stream pushes the caller's inbox changes over server-sent events
// until the client disconnects. The subscription is cancelled on
// return, so nothing is delivered after the handler exits.
func (h *NotificationHTTP) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stream.notifications")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "stream_notifications_error", err)
	}

	events, cancel := h.Hub.Subscribe(userID, 32)
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				l.Error("stream_notifications_error", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			w.Flush()
		}
	}
}
