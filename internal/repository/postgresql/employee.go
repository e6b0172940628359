package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelectColumns = `
	e.id, e.client_id, e.staff_id, e.firstname, e.middlename, e.surname, e.email,
	e.gender, e.job_role, e.branch, e.avatar,
	e.level_id, e.line_manager_id, e.reliever_id,
	e.is_on_leave, e.is_admin, e.is_active,
	e.created_at, e.updated_at,
	l.name AS level_name
`

const employeeSelectJoins = `
	FROM employees e
	LEFT JOIN levels l ON e.level_id = l.id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.ClientID, &e.StaffID, &e.Firstname, &e.Middlename, &e.Surname, &e.Email,
		&e.Gender, &e.JobRole, &e.Branch, &e.Avatar,
		&e.LevelID, &e.LineManagerID, &e.RelieverID,
		&e.IsOnLeave, &e.IsAdmin, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
		&e.LevelName,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			client_id, staff_id, firstname, middlename, surname, email,
			gender, job_role, branch,
			level_id, line_manager_id, reliever_id, is_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, is_on_leave, is_active, created_at, updated_at
	`

	created := e
	err := q.QueryRow(ctx, query,
		e.ClientID, e.StaffID, e.Firstname, e.Middlename, e.Surname, e.Email,
		e.Gender, e.JobRole, e.Branch,
		e.LevelID, e.LineManagerID, e.RelieverID, e.IsAdmin,
	).Scan(&created.ID, &created.IsOnLeave, &created.IsActive, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, clientID string) (employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + `
		WHERE e.id = $1 AND e.client_id = $2
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, id, clientID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, clientID, email string) (employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + `
		WHERE e.client_id = $1 AND LOWER(e.email) = LOWER($2)
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, clientID, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByClientID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByClientID(ctx context.Context, clientID string) ([]employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + `
		WHERE e.client_id = $1
		ORDER BY e.surname, e.firstname
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// GetByLevelID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByLevelID(ctx context.Context, levelID, clientID string) ([]employee.Employee, error) {
	q := database.GetQuerier(ctx, r.db)

	query := "SELECT " + employeeSelectColumns + employeeSelectJoins + `
		WHERE e.level_id = $1 AND e.client_id = $2
		ORDER BY e.surname, e.firstname
	`

	rows, err := q.Query(ctx, query, levelID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.StaffID != nil {
		updates["staff_id"] = *req.StaffID
	}
	if req.Firstname != nil {
		updates["firstname"] = *req.Firstname
	}
	if req.Middlename != nil {
		updates["middlename"] = *req.Middlename
	}
	if req.Surname != nil {
		updates["surname"] = *req.Surname
	}
	if req.JobRole != nil {
		updates["job_role"] = *req.JobRole
	}
	if req.Branch != nil {
		updates["branch"] = *req.Branch
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.LevelID != nil {
		updates["level_id"] = *req.LevelID
	}
	if req.LineManagerID != nil {
		updates["line_manager_id"] = *req.LineManagerID
	}
	if req.RelieverID != nil {
		updates["reliever_id"] = *req.RelieverID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for employee update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE employees SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND client_id = $%d", i, i+1)
	args = append(args, req.ID, clientID)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", req.ID, err)
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetOnLeave implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetOnLeave(ctx context.Context, id string, onLeave bool) error {
	q := database.GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE employees SET is_on_leave = $1, updated_at = NOW() WHERE id = $2`,
		onLeave, id)
	return err
}

// NullifyReferences implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) NullifyReferences(ctx context.Context, id, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET line_manager_id = CASE WHEN line_manager_id = $1 THEN NULL ELSE line_manager_id END,
		    reliever_id = CASE WHEN reliever_id = $1 THEN NULL ELSE reliever_id END,
		    updated_at = NOW()
		WHERE client_id = $2 AND (line_manager_id = $1 OR reliever_id = $1)
	`

	_, err := q.Exec(ctx, query, id, clientID)
	return err
}

// ClearResumedLeaveFlags implements employee.EmployeeRepository. Matches
// employees flagged on leave whose latest approved leave has passed its
// resumption date.
func (r *employeeRepositoryImpl) ClearResumedLeaveFlags(ctx context.Context, now time.Time) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE employees e
		SET is_on_leave = FALSE,
		    updated_at = NOW()
		WHERE e.is_on_leave = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM leaves lv
			WHERE lv.employee_id = e.id
			AND lv.status = 'approved'
			AND lv.resumption_date > $1
		)
	`

	result, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
