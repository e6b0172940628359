package postgresql

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/report"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountsByMonth implements report.ReportRepository. Months with no requests
// are absent from the result; the service fills the gaps.
func (r *reportRepositoryImpl) CountsByMonth(ctx context.Context, clientID string, year int) ([]report.MonthlyCount, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month,
			   COUNT(*) AS total,
			   COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			   COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			   COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM leaves
		WHERE client_id = $1 AND EXTRACT(YEAR FROM created_at) = $2
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, clientID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]report.MonthlyCount, 0, 12)
	for rows.Next() {
		var c report.MonthlyCount
		if err := rows.Scan(&c.Month, &c.Total, &c.Approved, &c.Rejected, &c.Pending); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DurationStats implements report.ReportRepository.
func (r *reportRepositoryImpl) DurationStats(ctx context.Context, clientID string, year int) (report.DurationStats, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(duration), 0)
		FROM leaves
		WHERE client_id = $1
		AND EXTRACT(YEAR FROM created_at) = $2
		AND status = 'approved'
	`

	var stats report.DurationStats
	err := q.QueryRow(ctx, query, clientID, year).Scan(&stats.ApprovedCount, &stats.TotalDays)
	return stats, err
}

// TypeUtilization implements report.ReportRepository.
func (r *reportRepositoryImpl) TypeUtilization(ctx context.Context, clientID string) ([]report.TypeUtilization, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name, lt.default_balance,
			   COUNT(lb.id), COALESCE(SUM(lb.balance), 0)
		FROM leave_types lt
		LEFT JOIN leave_balances lb ON lb.leave_type_id = lt.id
		WHERE lt.client_id = $1
		GROUP BY lt.id, lt.name, lt.default_balance
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	utilization := make([]report.TypeUtilization, 0)
	for rows.Next() {
		var u report.TypeUtilization
		if err := rows.Scan(&u.LeaveTypeID, &u.LeaveTypeName, &u.DefaultBalance, &u.BalanceCount, &u.BalanceSum); err != nil {
			return nil, err
		}
		utilization = append(utilization, u)
	}
	return utilization, rows.Err()
}
