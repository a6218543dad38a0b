package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
	"github.com/campusmart/campus_market/internal/util"
)

type ChatHTTP struct {
	Svc *service.ChatService
}

func (h *ChatHTTP) SendMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "send.message")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "send_message_error", err)
	}

	recipientID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		l.Warn("send_message_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipient id"})
	}

	var req transport.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("send_message_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	message, err := h.Svc.SendMessage(ctx, userID, recipientID, req.Text, req.ImageURL)
	if err != nil {
		return respondError(c, l, "send_message_error", err)
	}
	return c.JSON(http.StatusCreated, message)
}

func (h *ChatHTTP) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.messages")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "list_messages_error", err)
	}

	otherID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		l.Warn("list_messages_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid chat partner id"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	messages, err := h.Svc.ListMessages(ctx, userID, otherID, limit, from)
	if err != nil {
		return respondError(c, l, "list_messages_error", err)
	}
	return c.JSON(http.StatusOK, messages)
}
