package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
)

type PurchaseHTTP struct {
	Svc *service.PurchaseService
}

func (h *PurchaseHTTP) InitiatePurchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "initiate.purchase")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "initiate_purchase_error", err)
	}

	var req transport.InitiatePurchaseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("initiate_purchase_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	purchase, err := h.Svc.InitiatePurchase(ctx, userID, req.ProductID, req.PaymentMethod)
	if err != nil {
		return respondError(c, l, "initiate_purchase_error", err)
	}

	l.Info("purchase initiated", "purchase_id", purchase.ID, "seller_id", purchase.SellerID)
	return c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHTTP) ConfirmTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "confirm.transaction")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "confirm_transaction_error", err)
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("confirm_transaction_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}

	notification, err := h.Svc.ConfirmTransaction(ctx, userID, notificationID)
	if err != nil {
		return respondError(c, l, "confirm_transaction_error", err)
	}

	l.Info("transaction confirmed", "purchase_id", notification.PurchaseID)
	return c.JSON(http.StatusOK, notification)
}

func (h *PurchaseHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.history")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "purchase_history_error", err)
	}

	purchases, err := h.Svc.History(ctx, userID)
	if err != nil {
		return respondError(c, l, "purchase_history_error", err)
	}
	return c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHTTP) Sales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.sales")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "sales_error", err)
	}

	sales, err := h.Svc.Sales(ctx, userID)
	if err != nil {
		return respondError(c, l, "sales_error", err)
	}
	return c.JSON(http.StatusOK, sales)
}
