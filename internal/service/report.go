package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusmart/campus_market/internal/live"
	"github.com/campusmart/campus_market/internal/models"
	"github.com/campusmart/campus_market/internal/mykafka"
	"github.com/campusmart/campus_market/internal/repo"
)

type ReportService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Hub    *live.Hub
}

// Report files a moderation report against a listing and drops an
// informational notification into the seller's inbox. The listing
// itself is not touched; takedown is a manual moderation decision.
func (s *ReportService) Report(ctx context.Context, reporterID uuid.UUID, productID uuid.UUID, reason string) (*models.Report, error) {
	if reporterID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("reason required: %w", ErrValidation)
	}

	reporter, err := s.Repo.GetUserByID(ctx, reporterID)
	if err != nil {
		return nil, wrapStoreErr("report product", err)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, wrapStoreErr("report product", err)
	}

	now := time.Now().UTC()
	report := models.Report{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		Reason:       reason,
		Date:         now,
	}
	sellerNotification := models.Notification{
		UserID:  product.SellerID,
		Title:   "Listing Reported",
		Message: fmt.Sprintf("Your listing %q has been reported: %s", product.Name, reason),
		Date:    now,
	}

	if err := s.Repo.CreateReport(ctx, &report, &sellerNotification); err != nil {
		return nil, wrapStoreErr("report product", err)
	}

	publish(ctx, s.Events, mykafka.TopicReportEvents, report.ID.String(), map[string]interface{}{
		"type":        "product_reported",
		"report_id":   report.ID,
		"product_id":  product.ID,
		"reporter_id": reporter.ID,
	})
	notifyLive(s.Hub, product.SellerID, "notifications", live.TypeCreated, sellerNotification)

	return &report, nil
}

func (s *ReportService) List(ctx context.Context, limit, offset int) ([]models.Report, error) {
	reports, err := s.Repo.ListReports(ctx, limit, offset)
	if err != nil {
		return nil, wrapStoreErr("list reports", err)
	}
	return reports, nil
}
