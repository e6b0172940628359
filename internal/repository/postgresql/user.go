package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (client_id, employee_id, email, password_hash, role, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := u
	err := q.QueryRow(ctx, query,
		u.ClientID, u.EmployeeID, u.Email, u.PasswordHash, u.Role, u.IsEmailVerified,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, email, password_hash, role, is_email_verified,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.Email, &found.PasswordHash,
			&found.Role, &found.IsEmailVerified, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, client_id, employee_id, email, password_hash, role, is_email_verified,
			   created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).
		Scan(&found.ID, &found.ClientID, &found.EmployeeID, &found.Email, &found.PasswordHash,
			&found.Role, &found.IsEmailVerified, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return found, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// MarkEmailVerified implements user.UserRepository.
func (r *userRepositoryImpl) MarkEmailVerified(ctx context.Context, id string) error {
	q := database.GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx,
		`UPDATE users SET is_email_verified = TRUE, updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
