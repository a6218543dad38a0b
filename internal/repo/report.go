package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campusmart/campus_market/internal/models"
)

// CreateReport stores the report and the seller-facing moderation
// notification together; neither is visible without the other.
func (r *GormRepo) CreateReport(ctx context.Context, report *models.Report, sellerNotification *models.Notification) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if report.Date.IsZero() {
			report.Date = time.Now().UTC()
		}
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		if sellerNotification != nil {
			sellerNotification.Date = report.Date
			if sellerNotification.Message == "" {
				sellerNotification.Message = fmt.Sprintf("Your listing %q has been reported: %s", report.ProductName, report.Reason)
			}
			if err := tx.Create(sellerNotification).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) ListReports(ctx context.Context, limit, offset int) ([]models.Report, error) {
	var reports []models.Report
	if err := r.DB.WithContext(ctx).
		Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
