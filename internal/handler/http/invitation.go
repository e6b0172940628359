package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/invitation"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type InvitationHandler interface {
	GetByToken(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type InvitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &InvitationHandlerImpl{invitationService: invitationService}
}

// GetByToken implements InvitationHandler. Public endpoint backing the
// accept page.
func (h *InvitationHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	resp, err := h.invitationService.GetByToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Accept implements InvitationHandler. Public endpoint.
func (h *InvitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	var req invitation.AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.invitationService.Accept(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invitation accepted successfully", nil)
}

// Resend implements InvitationHandler.
func (h *InvitationHandlerImpl) Resend(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.invitationService.Resend(r.Context(), chi.URLParam(r, "employeeID"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invitation resent successfully", nil)
}

// Revoke implements InvitationHandler.
func (h *InvitationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.invitationService.Revoke(r.Context(), chi.URLParam(r, "employeeID"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invitation revoked successfully", nil)
}
