package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	domainRepo "github.com/glowdesk/glowdesk-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetRevenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&entity.Bill{}).
		Select("COALESCE(SUM(grand_total), 0)").
		Where("bill_date >= ? AND bill_date <= ?", start, end).
		Scan(&revenue).Error
	return revenue, err
}

func (r *reportRepository) CountBillsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Bill{}).
		Where("bill_date >= ? AND bill_date <= ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	cutoff := time.Now().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).
		Model(&entity.Bill{}).
		Select(`bill_date AS date,
			COUNT(*) AS bill_count,
			COALESCE(SUM(grand_total), 0) AS revenue,
			COALESCE(SUM(total_discount), 0) AS discount,
			COALESCE(SUM(total_tax), 0) AS tax`).
		Where("bill_date >= ?", cutoff).
		Group("bill_date").
		Order("bill_date ASC").
		Scan(&results).Error

	return results, err
}

func (r *reportRepository) GetMethodBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.MethodBreakdownResult, error) {
	var results []domainRepo.MethodBreakdownResult

	err := r.db.WithContext(ctx).
		Model(&entity.BillTender{}).
		Select(`bill_tenders.method AS method,
			COALESCE(SUM(bill_tenders.amount), 0) AS amount,
			COUNT(*) AS count`).
		Joins("JOIN bills ON bills.id = bill_tenders.bill_id").
		Where("bills.bill_date >= ? AND bills.bill_date <= ?", start, end).
		Group("bill_tenders.method").
		Order("amount DESC").
		Scan(&results).Error

	return results, err
}

func (r *reportRepository) GetTopStaff(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.StaffRevenueResult, error) {
	var results []domainRepo.StaffRevenueResult

	err := r.db.WithContext(ctx).
		Model(&entity.BillItem{}).
		Select(`staff.id AS staff_id,
			staff.name AS staff_name,
			COALESCE(SUM(bill_items.line_total), 0) AS revenue,
			COUNT(*) AS item_count`).
		Joins("JOIN staff ON staff.id = bill_items.staff_id").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.bill_date >= ? AND bills.bill_date <= ?", start, end).
		Group("staff.id, staff.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}
