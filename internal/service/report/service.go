package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leavehq/leave-backend-go/internal/domain/report"
)

type reportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

// LeaveAnalytics implements report.ReportService. Months with no requests
// still appear in the series with zero counts.
func (s *reportServiceImpl) LeaveAnalytics(ctx context.Context, clientID string, year int) (report.AnalyticsResponse, error) {
	if year < 1000 || year > 9999 {
		return report.AnalyticsResponse{}, report.ErrInvalidYear
	}

	counts, err := s.reportRepo.CountsByMonth(ctx, clientID, year)
	if err != nil {
		return report.AnalyticsResponse{}, fmt.Errorf("failed to load monthly counts: %w", err)
	}

	byMonth := make(map[int]report.MonthlyCount, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c
	}

	resp := report.AnalyticsResponse{Year: year, Months: make([]report.MonthlyCountResponse, 0, 12)}
	for month := 1; month <= 12; month++ {
		c := byMonth[month]
		resp.Months = append(resp.Months, report.MonthlyCountResponse{
			Month:    month,
			Total:    c.Total,
			Approved: c.Approved,
			Rejected: c.Rejected,
			Pending:  c.Pending,
		})
		resp.TotalRequests += c.Total
		resp.ApprovedCount += c.Approved
		resp.RejectedCount += c.Rejected
		resp.PendingCount += c.Pending
	}

	resp.ApprovalRate = rate(resp.ApprovedCount, resp.TotalRequests)
	resp.RejectionRate = rate(resp.RejectedCount, resp.TotalRequests)

	stats, err := s.reportRepo.DurationStats(ctx, clientID, year)
	if err != nil {
		return report.AnalyticsResponse{}, fmt.Errorf("failed to load duration stats: %w", err)
	}
	resp.AverageDuration = average(stats.TotalDays, stats.ApprovedCount)

	return resp, nil
}

// rate returns part/total as a percentage with two decimal places.
func rate(part, total int64) string {
	if total == 0 {
		return "0.00"
	}
	return decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}

func average(sum, count int64) string {
	if count == 0 {
		return "0.00"
	}
	return decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(count)).
		StringFixed(2)
}

// BalanceUtilization implements report.ReportService.
func (s *reportServiceImpl) BalanceUtilization(ctx context.Context, clientID string) ([]report.UtilizationResponse, error) {
	rows, err := s.reportRepo.TypeUtilization(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance utilization: %w", err)
	}

	responses := make([]report.UtilizationResponse, 0, len(rows))
	for _, row := range rows {
		resp := report.UtilizationResponse{
			LeaveTypeID:     row.LeaveTypeID,
			LeaveTypeName:   row.LeaveTypeName,
			DefaultBalance:  row.DefaultBalance,
			AverageBalance:  average(row.BalanceSum, row.BalanceCount),
			UtilizationRate: "0.00",
		}

		// Utilization is the share of the default allowance already spent
		// across every holder of the type.
		allocated := decimal.NewFromInt(row.BalanceCount).Mul(decimal.NewFromInt(int64(row.DefaultBalance)))
		if allocated.IsPositive() {
			spent := allocated.Sub(decimal.NewFromInt(row.BalanceSum))
			resp.UtilizationRate = spent.Div(allocated).Mul(decimal.NewFromInt(100)).StringFixed(2)
		}

		responses = append(responses, resp)
	}
	return responses, nil
}
