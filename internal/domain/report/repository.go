package report

import "context"

type ReportRepository interface {
	CountsByMonth(ctx context.Context, clientID string, year int) ([]MonthlyCount, error)
	DurationStats(ctx context.Context, clientID string, year int) (DurationStats, error)
	TypeUtilization(ctx context.Context, clientID string) ([]TypeUtilization, error)
}
