package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/employee"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
	"github.com/leavehq/leave-backend-go/internal/service/file"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
	fileService     file.FileService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, fileService file.FileService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService, fileService: fileService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims := middleware.GetClaims(r)
	resp, err := h.employeeService.CreateEmployee(r.Context(), claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", resp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	claims := middleware.GetClaims(r)
	resp, err := h.employeeService.UpdateEmployee(r.Context(), claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", resp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetMe implements EmployeeHandler. Returns the caller's own record.
func (h *EmployeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	resp, err := h.employeeService.GetEmployee(r.Context(), claims.EmployeeID, claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.employeeService.ListEmployees(r.Context(), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// UploadAvatar implements EmployeeHandler. Stores the file and patches the
// employee record with its path.
func (h *EmployeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	f, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Avatar file is required", nil)
		return
	}
	defer f.Close()

	path, err := h.fileService.UploadAvatar(r.Context(), claims.EmployeeID, f, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.UpdateEmployee(r.Context(), claims.ClientID, employee.UpdateEmployeeRequest{
		ID:     claims.EmployeeID,
		Avatar: &path,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Avatar uploaded successfully", resp)
}
