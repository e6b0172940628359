package notification

import "context"

type NotificationService interface {
	// Notify writes a notification for one recipient. Failures are logged
	// and swallowed so callers can fire and forget.
	Notify(ctx context.Context, n Notification)
	// NotifyMany writes one notification per recipient in a single batch.
	NotifyMany(ctx context.Context, clientID string, recipientIDs []string, senderID *string, typ NotificationType, title, message string, data map[string]interface{})

	List(ctx context.Context, recipientID, clientID string, page, limit int, unreadOnly bool) (ListNotificationResponse, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID, clientID string) error
	MarkAllAsRead(ctx context.Context, recipientID, clientID string) error
}
