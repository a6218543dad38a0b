package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "get_cart_error", err)
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return respondError(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "add_to_cart_error", err)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart.quantity")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "update_quantity_error", err)
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		l.Warn("update_quantity_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Svc.UpdateQuantity(ctx, userID, productID, req.Quantity); err != nil {
		return respondError(c, l, "update_quantity_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.from.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "remove_from_cart_error", err)
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, productID); err != nil {
		return respondError(c, l, "remove_from_cart_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "clear_cart_error", err)
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return respondError(c, l, "clear_cart_error", err)
	}

	l.Info("cart cleared")
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.summary")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "cart_summary_error", err)
	}

	summary, err := h.Svc.Summary(ctx, userID)
	if err != nil {
		return respondError(c, l, "cart_summary_error", err)
	}
	return c.JSON(http.StatusOK, summary)
}
