package httpserver

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service/search"
	"github.com/campusmart/campus_market/internal/util"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.products")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter q required"})
	}
	if h.ES == nil {
		l.Warn("search_error", "status", http.StatusServiceUnavailable, "error", "search backend not configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search unavailable"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, query, from, limit)
	if err != nil {
		l.Error("search_error", "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": products,
	})
}
