package report

import "context"

type ReportService interface {
	// LeaveAnalytics returns the monthly request series for a year plus
	// approval-rate and average-duration figures.
	LeaveAnalytics(ctx context.Context, clientID string, year int) (AnalyticsResponse, error)
	// BalanceUtilization reports how much of each leave type's default
	// allowance is consumed across the client.
	BalanceUtilization(ctx context.Context, clientID string) ([]UtilizationResponse, error)
}
