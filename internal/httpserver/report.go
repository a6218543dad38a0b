package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/logging"
	"github.com/campusmart/campus_market/internal/service"
	"github.com/campusmart/campus_market/internal/transport"
	"github.com/campusmart/campus_market/internal/util"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) CreateReport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.report")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, l, "create_report_error", err)
	}

	var req transport.ReportRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_report_error", "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	report, err := h.Svc.Report(ctx, userID, req.ProductID, req.Reason)
	if err != nil {
		return respondError(c, l, "create_report_error", err)
	}

	l.Info("report filed", "report_id", report.ID, "product_id", report.ProductID)
	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHTTP) ListReports(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.reports")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Calculate(page, size)

	reports, err := h.Svc.List(ctx, limit, from)
	if err != nil {
		return respondError(c, l, "list_reports_error", err)
	}
	return c.JSON(http.StatusOK, reports)
}
