package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type levelRepositoryImpl struct {
	db *database.DB
}

func NewLevelRepository(db *database.DB) level.LevelRepository {
	return &levelRepositoryImpl{db: db}
}

// Create implements level.LevelRepository.
func (r *levelRepositoryImpl) Create(ctx context.Context, newLevel level.Level) (level.Level, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO levels (client_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, client_id, name, description, created_at, updated_at
	`

	var created level.Level
	err := q.QueryRow(ctx, query, newLevel.ClientID, newLevel.Name, newLevel.Description).
		Scan(&created.ID, &created.ClientID, &created.Name, &created.Description, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return level.Level{}, err
	}
	return created, nil
}

// GetByID implements level.LevelRepository.
func (r *levelRepositoryImpl) GetByID(ctx context.Context, id, clientID string) (level.Level, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM levels
		WHERE id = $1 AND client_id = $2
	`

	var found level.Level
	err := q.QueryRow(ctx, query, id, clientID).
		Scan(&found.ID, &found.ClientID, &found.Name, &found.Description, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return level.Level{}, level.ErrLevelNotFound
		}
		return level.Level{}, err
	}
	return found, nil
}

// GetByName implements level.LevelRepository.
func (r *levelRepositoryImpl) GetByName(ctx context.Context, clientID, name string) (level.Level, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM levels
		WHERE client_id = $1 AND LOWER(name) = LOWER($2)
	`

	var found level.Level
	err := q.QueryRow(ctx, query, clientID, name).
		Scan(&found.ID, &found.ClientID, &found.Name, &found.Description, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return level.Level{}, level.ErrLevelNotFound
		}
		return level.Level{}, err
	}
	return found, nil
}

// GetByClientID implements level.LevelRepository.
func (r *levelRepositoryImpl) GetByClientID(ctx context.Context, clientID string) ([]level.Level, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, name, description, created_at, updated_at
		FROM levels
		WHERE client_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := make([]level.Level, 0)
	for rows.Next() {
		var l level.Level
		if err := rows.Scan(&l.ID, &l.ClientID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// Update implements level.LevelRepository.
func (r *levelRepositoryImpl) Update(ctx context.Context, req level.UpdateLevelRequest, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for level update")
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

	sql := "UPDATE levels SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND client_id = $%d", i, i+1)
	args = append(args, req.ID, clientID)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return level.ErrLevelNotFound
		}
		return fmt.Errorf("failed to update level with id %s: %w", req.ID, err)
	}
	return nil
}

// Delete implements level.LevelRepository.
func (r *levelRepositoryImpl) Delete(ctx context.Context, id, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM levels WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return level.ErrLevelNotFound
	}
	return nil
}

// GetCatalog implements level.LevelRepository.
func (r *levelRepositoryImpl) GetCatalog(ctx context.Context, id, clientID string) ([]level.CatalogEntry, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, default_balance
		FROM leave_types
		WHERE level_id = $1 AND client_id = $2
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, id, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]level.CatalogEntry, 0)
	for rows.Next() {
		var e level.CatalogEntry
		if err := rows.Scan(&e.LeaveTypeID, &e.Name, &e.DefaultBalance); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
