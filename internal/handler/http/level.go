package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/level"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type LevelHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LevelHandlerImpl struct {
	levelService level.LevelService
}

func NewLevelHandler(levelService level.LevelService) LevelHandler {
	return &LevelHandlerImpl{levelService: levelService}
}

// Create implements LevelHandler.
func (h *LevelHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req level.CreateLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims := middleware.GetClaims(r)
	resp, err := h.levelService.CreateLevel(r.Context(), claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Level created successfully", resp)
}

// Update implements LevelHandler.
func (h *LevelHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req level.UpdateLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	claims := middleware.GetClaims(r)
	resp, err := h.levelService.UpdateLevel(r.Context(), claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Level updated successfully", resp)
}

// Get implements LevelHandler.
func (h *LevelHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.levelService.GetLevel(r.Context(), chi.URLParam(r, "id"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// List implements LevelHandler.
func (h *LevelHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.levelService.ListLevels(r.Context(), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Delete implements LevelHandler.
func (h *LevelHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.levelService.DeleteLevel(r.Context(), chi.URLParam(r, "id"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Level deleted successfully", nil)
}
