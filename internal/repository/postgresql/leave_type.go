package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (client_id, level_id, name, default_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, level_id, name, default_balance, created_at, updated_at
	`

	var created leave.LeaveType
	err := q.QueryRow(ctx, query, leaveType.ClientID, leaveType.LevelID, leaveType.Name, leaveType.DefaultBalance).
		Scan(&created.ID, &created.ClientID, &created.LevelID, &created.Name, &created.DefaultBalance, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id, clientID string) (leave.LeaveType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.client_id, lt.level_id, lt.name, lt.default_balance,
			   lt.created_at, lt.updated_at,
			   l.name AS level_name
		FROM leave_types lt
		JOIN levels l ON lt.level_id = l.id
		WHERE lt.id = $1 AND lt.client_id = $2
	`

	var found leave.LeaveType
	err := q.QueryRow(ctx, query, id, clientID).
		Scan(&found.ID, &found.ClientID, &found.LevelID, &found.Name, &found.DefaultBalance,
			&found.CreatedAt, &found.UpdatedAt, &found.LevelName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return found, nil
}

// GetByLevelID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByLevelID(ctx context.Context, levelID, clientID string) ([]leave.LeaveType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, level_id, name, default_balance, created_at, updated_at
		FROM leave_types
		WHERE level_id = $1 AND client_id = $2
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, levelID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveTypes(rows)
}

// GetByClientID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByClientID(ctx context.Context, clientID string) ([]leave.LeaveType, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, level_id, name, default_balance, created_at, updated_at
		FROM leave_types
		WHERE client_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveTypes(rows)
}

func scanLeaveTypes(rows pgx.Rows) ([]leave.LeaveType, error) {
	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var t leave.LeaveType
		if err := rows.Scan(&t.ID, &t.ClientID, &t.LevelID, &t.Name, &t.DefaultBalance, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ExistsByNameInLevel implements leave.LeaveTypeRepository. The comparison is
// case-insensitive so "Annual" and "annual" cannot coexist on one level.
func (r *leaveTypeRepositoryImpl) ExistsByNameInLevel(ctx context.Context, name, levelID, clientID string, excludeID *string) (bool, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_types
			WHERE LOWER(name) = LOWER($1) AND level_id = $2 AND client_id = $3
			AND ($4::uuid IS NULL OR id <> $4)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, name, levelID, clientID, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := database.GetQuerier(ctx, r.db)

	updates := map[string]interface{}{
		"name":            leaveType.Name,
		"default_balance": leaveType.DefaultBalance,
		"updated_at":      time.Now(),
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE leave_types SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND client_id = $%d", i, i+1)
	args = append(args, leaveType.ID, leaveType.ClientID)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to update leave type with id %s: %w", leaveType.ID, err)
	}
	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
