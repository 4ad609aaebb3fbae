package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

// BillFilterParams holds filter parameters for listing bills
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// BillRepository defines the interface for bill data operations.
// Bills are append-only: no update or delete is exposed.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
}

// DailySalesResult represents sales totals for a single day
type DailySalesResult struct {
	Date       time.Time
	BillCount  int64
	Revenue    float64
	Discount   float64
	Tax        float64
}

// MethodBreakdownResult represents revenue tendered through one payment method
type MethodBreakdownResult struct {
	Method string
	Amount float64
	Count  int64
}

// StaffRevenueResult represents revenue attributed to one staff member
type StaffRevenueResult struct {
	StaffID   uuid.UUID
	StaffName string
	Revenue   float64
	ItemCount int64
}

// ReportRepository defines the interface for sales aggregation queries
type ReportRepository interface {
	// GetRevenueBetween returns total grand-total revenue for bills dated in [start, end].
	GetRevenueBetween(ctx context.Context, start, end time.Time) (float64, error)

	// CountBillsBetween returns the number of bills dated in [start, end].
	CountBillsBetween(ctx context.Context, start, end time.Time) (int64, error)

	// GetDailySales returns per-day sales totals for the last N days.
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetMethodBreakdown returns tendered amounts grouped by payment method in [start, end].
	GetMethodBreakdown(ctx context.Context, start, end time.Time) ([]MethodBreakdownResult, error)

	// GetTopStaff returns staff ranked by attributed line revenue in [start, end].
	GetTopStaff(ctx context.Context, start, end time.Time, limit int) ([]StaffRevenueResult, error)
}
