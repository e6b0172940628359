package postgresql

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (client_id, recipient_id, sender_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query, n.ClientID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Data)
	return err
}

// CreateBatch implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	q := database.GetQuerier(ctx, r.db)

	for _, n := range ns {
		query := `
			INSERT INTO notifications (client_id, recipient_id, sender_id, type, title, message, data)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := q.Exec(ctx, query, n.ClientID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Data); err != nil {
			return err
		}
	}
	return nil
}

// GetByRecipient implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) GetByRecipient(ctx context.Context, recipientID, clientID string, page, limit int, unreadOnly bool) ([]notification.Notification, int64, error) {
	q := database.GetQuerier(ctx, r.db)

	where := `WHERE recipient_id = $1 AND client_id = $2`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications `+where, recipientID, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, client_id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := q.Query(ctx, query, recipientID, clientID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.ClientID, &n.RecipientID, &n.SenderID, &n.Type,
			&n.Title, &n.Message, &n.Data, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

// UnreadCount implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) UnreadCount(ctx context.Context, recipientID, clientID string) (int, error) {
	q := database.GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND client_id = $2 AND is_read = FALSE`,
		recipientID, clientID).Scan(&count)
	return count, err
}

// MarkAsRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, recipientID, clientID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND client_id = $3
	`

	_, err := q.Exec(ctx, query, ids, recipientID, clientID)
	return err
}

// MarkAllAsRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID, clientID string) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND client_id = $2 AND is_read = FALSE
	`

	_, err := q.Exec(ctx, query, recipientID, clientID)
	return err
}
