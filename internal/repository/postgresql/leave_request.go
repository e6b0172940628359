package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelectColumns = `
	lv.id, lv.client_id, lv.employee_id, lv.line_manager_id, lv.reliever_id, lv.leave_type_id,
	lv.start_date, lv.resumption_date, lv.duration, lv.reason, lv.document_url,
	lv.status, lv.approval_count, lv.approval_reason, lv.rejection_reason,
	lv.approved_by, lv.rejected_by,
	lv.balance_before_leave, lv.balance_after_leave, lv.remaining_days,
	lv.created_at, lv.updated_at,
	e.firstname || ' ' || e.surname AS employee_name,
	lm.firstname || ' ' || lm.surname AS line_manager_name,
	lt.name AS leave_type_name
`

const leaveSelectJoins = `
	FROM leaves lv
	JOIN employees e ON lv.employee_id = e.id
	JOIN employees lm ON lv.line_manager_id = lm.id
	JOIN leave_types lt ON lv.leave_type_id = lt.id
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.ClientID, &l.EmployeeID, &l.LineManagerID, &l.RelieverID, &l.LeaveTypeID,
		&l.StartDate, &l.ResumptionDate, &l.Duration, &l.Reason, &l.DocumentURL,
		&l.Status, &l.ApprovalCount, &l.ApprovalReason, &l.RejectionReason,
		&l.ApprovedBy, &l.RejectedBy,
		&l.Summary.BalanceBeforeLeave, &l.Summary.BalanceAfterLeave, &l.Summary.RemainingDays,
		&l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.LineManagerName, &l.LeaveTypeName,
	)
	return l, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			client_id, employee_id, line_manager_id, reliever_id, leave_type_id,
			start_date, resumption_date, duration, reason, document_url,
			status, approval_count,
			balance_before_leave, balance_after_leave, remaining_days
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	created := lv
	err := q.QueryRow(ctx, query,
		lv.ClientID, lv.EmployeeID, lv.LineManagerID, lv.RelieverID, lv.LeaveTypeID,
		lv.StartDate, lv.ResumptionDate, lv.Duration, lv.Reason, lv.DocumentURL,
		lv.Status, lv.ApprovalCount,
		lv.Summary.BalanceBeforeLeave, lv.Summary.BalanceAfterLeave, lv.Summary.RemainingDays,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.Leave{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository. An empty clientID skips
// the tenant filter (super admin scope).
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id, clientID string) (leave.Leave, error) {
	q := database.GetQuerier(ctx, r.db)

	query := "SELECT " + leaveSelectColumns + leaveSelectJoins + `
		WHERE lv.id = $1 AND ($2::text = '' OR lv.client_id::text = $2::text)
	`

	found, err := scanLeave(q.QueryRow(ctx, query, id, clientID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, err
	}
	return found, nil
}

// HasPendingByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasPendingByEmployee(ctx context.Context, employeeID, clientID string) (bool, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leaves
			WHERE employee_id = $1 AND client_id = $2 AND status = 'pending'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, clientID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func buildListConditions(filter leave.ListFilter, args []interface{}) ([]string, []interface{}) {
	conditions := make([]string, 0, 3)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("lv.status = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("lv.employee_id = $%d", len(args)))
	}
	if filter.LineManagerID != nil {
		args = append(args, *filter.LineManagerID)
		conditions = append(conditions, fmt.Sprintf("lv.line_manager_id = $%d", len(args)))
	}
	return conditions, args
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, clientID string, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	filter.Normalize()

	args := []interface{}{clientID}
	conditions, args := buildListConditions(filter, args)
	where := "WHERE lv.client_id = $1"
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}

	return r.list(ctx, where, args, filter)
}

// ListAllClients implements leave.LeaveRequestRepository. Super admin scope,
// no tenant filter.
func (r *leaveRequestRepositoryImpl) ListAllClients(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	filter.Normalize()

	conditions, args := buildListConditions(filter, nil)
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return r.list(ctx, where, args, filter)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, where string, args []interface{}, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	q := database.GetQuerier(ctx, r.db)

	countQuery := "SELECT COUNT(*) " + leaveSelectJoins + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectQuery := "SELECT " + leaveSelectColumns + leaveSelectJoins + where +
		fmt.Sprintf(" ORDER BY lv.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, err
		}
		leaves = append(leaves, l)
	}
	return leaves, total, rows.Err()
}

// Update implements leave.LeaveRequestRepository. Persists the decision
// fields and the summary snapshot.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, lv leave.Leave) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1,
		    approval_count = $2,
		    approval_reason = $3,
		    rejection_reason = $4,
		    approved_by = $5,
		    rejected_by = $6,
		    balance_before_leave = $7,
		    balance_after_leave = $8,
		    remaining_days = $9,
		    updated_at = NOW()
		WHERE id = $10 AND client_id = $11
	`

	result, err := q.Exec(ctx, query,
		lv.Status, lv.ApprovalCount, lv.ApprovalReason, lv.RejectionReason,
		lv.ApprovedBy, lv.RejectedBy,
		lv.Summary.BalanceBeforeLeave, lv.Summary.BalanceAfterLeave, lv.Summary.RemainingDays,
		lv.ID, lv.ClientID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
