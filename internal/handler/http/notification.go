package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/leavehq/leave-backend-go/internal/domain/notification"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.NotificationService
}

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// List implements NotificationHandler.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.Success(w, notification.ListNotificationResponse{Items: []notification.NotificationResponse{}})
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	unreadOnly := q.Get("unread") == "true"

	resp, err := h.notificationService.List(r.Context(), claims.EmployeeID, claims.ClientID, page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// MarkAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims := middleware.GetClaims(r)
	if err := h.notificationService.MarkAsRead(r.Context(), req.IDs, claims.EmployeeID, claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

// MarkAllAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.notificationService.MarkAllAsRead(r.Context(), claims.EmployeeID, claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}
