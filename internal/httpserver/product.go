package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/repo"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
	"github.com/campusmart/campus_market/internal/util"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.product")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "create_product_error", err)
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
	}
	created, err := h.Svc.Create(ctx, userID, &product)
	if err != nil {
		return respondError(c, l, "create_product_error", err)
	}

	l.Info("product created", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.products")

	var f repo.ProductFilter
	f.Category = c.QueryParam("category")
	f.Sort = c.QueryParam("sort")
	if v := c.QueryParam("price_min"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMin = &min
		}
	}
	if v := c.QueryParam("price_max"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMax = &max
		}
	}
	if v := c.QueryParam("seller_id"); v != "" {
		if sellerID, err := uuid.Parse(v); err == nil {
			f.SellerID = sellerID
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	products, err := h.Svc.List(ctx, f, limit, from)
	if err != nil {
		return respondError(c, l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.product")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "patch_product_error", err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_product_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.ImageURLs != nil {
		fields["image_urls"] = *req.ImageURLs
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update"})
	}

	product, err := h.Svc.Patch(ctx, userID, id, fields)
	if err != nil {
		return respondError(c, l, "patch_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.product")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "delete_product_error", err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return respondError(c, l, "delete_product_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
