package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) error
	CreateBatch(ctx context.Context, ns []Notification) error
	GetByRecipient(ctx context.Context, recipientID, clientID string, page, limit int, unreadOnly bool) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID, clientID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID, clientID string) error
	MarkAllAsRead(ctx context.Context, recipientID, clientID string) error
}
