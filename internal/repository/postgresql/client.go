package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, newClient client.Client) (client.Client, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (name, email, logo, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, logo, color, created_at, updated_at
	`

	var created client.Client
	err := q.QueryRow(ctx, query, newClient.Name, newClient.Email, newClient.Logo, newClient.Color).
		Scan(&created.ID, &created.Name, &created.Email, &created.Logo, &created.Color, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return client.Client{}, client.ErrClientNameExists
		}
		return client.Client{}, err
	}
	return created, nil
}

// GetByID implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByID(ctx context.Context, id string) (client.Client, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, logo, color, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var found client.Client
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Email, &found.Logo, &found.Color, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, err
	}
	return found, nil
}

// GetByName implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByName(ctx context.Context, name string) (client.Client, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, logo, color, created_at, updated_at
		FROM clients
		WHERE LOWER(name) = LOWER($1)
	`

	var found client.Client
	err := q.QueryRow(ctx, query, name).
		Scan(&found.ID, &found.Name, &found.Email, &found.Logo, &found.Color, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, err
	}
	return found, nil
}

// List implements client.ClientRepository.
func (r *clientRepositoryImpl) List(ctx context.Context) ([]client.Client, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, logo, color, created_at, updated_at
		FROM clients
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]client.Client, 0)
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Logo, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Update implements client.ClientRepository.
func (r *clientRepositoryImpl) Update(ctx context.Context, req client.UpdateClientRequest) error {
	q := database.GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for client update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE clients SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, req.ID)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return client.ErrClientNotFound
		}
		return fmt.Errorf("failed to update client with id %s: %w", req.ID, err)
	}
	return nil
}
