package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavehq/leave-backend-go/internal/domain/notification"
)

type notificationServiceImpl struct {
	notificationRepo notification.NotificationRepository
}

func NewNotificationService(notificationRepo notification.NotificationRepository) notification.NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

// Notify implements notification.NotificationService.
func (s *notificationServiceImpl) Notify(ctx context.Context, n notification.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		slog.Error("Failed to write notification",
			"type", n.Type, "recipient_id", n.RecipientID, "error", err)
	}
}

// NotifyMany implements notification.NotificationService.
func (s *notificationServiceImpl) NotifyMany(ctx context.Context, clientID string, recipientIDs []string, senderID *string, typ notification.NotificationType, title, message string, data map[string]interface{}) {
	if len(recipientIDs) == 0 {
		return
	}

	ns := make([]notification.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		ns = append(ns, notification.Notification{
			ClientID:    clientID,
			RecipientID: recipientID,
			SenderID:    senderID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, ns); err != nil {
		slog.Error("Failed to write notification batch",
			"type", typ, "recipients", len(recipientIDs), "error", err)
	}
}

// List implements notification.NotificationService.
func (s *notificationServiceImpl) List(ctx context.Context, recipientID, clientID string, page, limit int, unreadOnly bool) (notification.ListNotificationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.notificationRepo.GetByRecipient(ctx, recipientID, clientID, page, limit, unreadOnly)
	if err != nil {
		return notification.ListNotificationResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.notificationRepo.UnreadCount(ctx, recipientID, clientID)
	if err != nil {
		return notification.ListNotificationResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, notification.ToNotificationResponse(n))
	}

	return notification.ListNotificationResponse{
		Items:       responses,
		UnreadCount: unread,
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
	}, nil
}

// MarkAsRead implements notification.NotificationService.
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, ids []string, recipientID, clientID string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.notificationRepo.MarkAsRead(ctx, ids, recipientID, clientID)
}

// MarkAllAsRead implements notification.NotificationService.
func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, recipientID, clientID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, recipientID, clientID)
}
