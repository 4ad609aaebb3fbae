package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/glowdesk/glowdesk-api/internal/domain/repository"
)

// ReportService aggregates finalized bills into dashboard figures and
// spreadsheet exports.
type ReportService struct {
	reportRepo repository.ReportRepository
	billRepo   repository.BillRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, billRepo repository.BillRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, billRepo: billRepo}
}

// SummaryStats holds the headline dashboard figures for a date range
type SummaryStats struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Revenue     float64   `json:"revenue"`
	BillCount   int64     `json:"bill_count"`
	AverageBill float64   `json:"average_bill"`
}

// GetSummary returns the headline figures for [start, end]
func (s *ReportService) GetSummary(ctx context.Context, start, end time.Time) (*SummaryStats, error) {
	revenue, err := s.reportRepo.GetRevenueBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	count, err := s.reportRepo.CountBillsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &SummaryStats{
		StartDate: start,
		EndDate:   end,
		Revenue:   revenue,
		BillCount: count,
	}
	if count > 0 {
		stats.AverageBill = revenue / float64(count)
	}
	return stats, nil
}

// GetDailySales returns per-day sales totals for the last N days
func (s *ReportService) GetDailySales(ctx context.Context, days int) ([]repository.DailySalesResult, error) {
	if days <= 0 {
		days = 7
	}
	return s.reportRepo.GetDailySales(ctx, days)
}

// GetMethodBreakdown returns tendered amounts by payment method
func (s *ReportService) GetMethodBreakdown(ctx context.Context, start, end time.Time) ([]repository.MethodBreakdownResult, error) {
	return s.reportRepo.GetMethodBreakdown(ctx, start, end)
}

// GetTopStaff returns staff ranked by attributed line revenue
func (s *ReportService) GetTopStaff(ctx context.Context, start, end time.Time, limit int) ([]repository.StaffRevenueResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.reportRepo.GetTopStaff(ctx, start, end, limit)
}

// ExportSales builds an xlsx workbook of the bills in [start, end] with a
// summary sheet and a per-bill detail sheet.
func (s *ReportService) ExportSales(ctx context.Context, start, end time.Time) (*bytes.Buffer, string, error) {
	bills, _, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		Pagination: nil,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, "", err
	}

	summary, err := s.GetSummary(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const billsSheet = "Bills"

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(billsSheet); err != nil {
		return nil, "", err
	}

	summaryRows := [][]interface{}{
		{"Sales Report"},
		{"From", start.Format("2006-01-02")},
		{"To", end.Format("2006-01-02")},
		{},
		{"Revenue", summary.Revenue},
		{"Bills", summary.BillCount},
		{"Average bill", summary.AverageBill},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	header := []interface{}{"Bill No", "Date", "Customer", "Sub Total", "Discount", "Tax", "Grand Total", "Payment Method"}
	if err := f.SetSheetRow(billsSheet, "A1", &header); err != nil {
		return nil, "", err
	}
	for i, bill := range bills {
		subTotal, _ := bill.SubTotal.Float64()
		discount, _ := bill.TotalDiscount.Float64()
		tax, _ := bill.TotalTax.Float64()
		grand, _ := bill.GrandTotal.Float64()
		row := []interface{}{
			bill.BillNo,
			bill.BillDate.Format("2006-01-02"),
			bill.CustomerName,
			subTotal,
			discount,
			tax,
			grand,
			bill.PaymentMethod,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(billsSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return buf, filename, nil
}
