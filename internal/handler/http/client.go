package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/client"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type ClientHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ClientHandlerImpl struct {
	clientService client.ClientService
}

func NewClientHandler(clientService client.ClientService) ClientHandler {
	return &ClientHandlerImpl{clientService: clientService}
}

// Create implements ClientHandler. Super admin only.
func (h *ClientHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Client created successfully", resp)
}

// Update implements ClientHandler.
func (h *ClientHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.clientService.UpdateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Client updated successfully", resp)
}

// Get implements ClientHandler. Super admin lookup by id.
func (h *ClientHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.clientService.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetMine implements ClientHandler. Returns the caller's own client.
func (h *ClientHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.clientService.GetClient(r.Context(), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// List implements ClientHandler. Super admin only.
func (h *ClientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.clientService.ListClients(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
