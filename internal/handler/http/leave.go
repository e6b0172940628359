package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
	"github.com/leavehq/leave-backend-go/internal/service/file"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	GetBalance(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalances(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetManagedRequests(w http.ResponseWriter, r *http.Request)
	ListAllRequests(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	fileService  file.FileService
}

func NewLeaveHandler(leaveService leave.LeaveService, fileService file.FileService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService, fileService: fileService}
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.CreateLeaveType(r.Context(), claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave type created successfully", resp)
}

// UpdateType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	claims := middleware.GetClaims(r)
	if err := h.leaveService.UpdateLeaveType(r.Context(), claims.ClientID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated successfully", nil)
}

// GetType implements LeaveHandler.
func (h *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.GetLeaveType(r.Context(), chi.URLParam(r, "id"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListTypes implements LeaveHandler. An optional level_id query narrows the
// listing to one level's catalog.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	var levelID *string
	if v := r.URL.Query().Get("level_id"); v != "" {
		levelID = &v
	}

	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.ListLeaveTypes(r.Context(), claims.ClientID, levelID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// DeleteType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.leaveService.DeleteLeaveType(r.Context(), chi.URLParam(r, "id"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// GetBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.GetBalance(r.Context(), chi.URLParam(r, "id"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetMyBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	resp, err := h.leaveService.GetEmployeeBalances(r.Context(), claims.EmployeeID, claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetEmployeeBalances implements LeaveHandler. Admin view of another
// employee's balances.
func (h *LeaveHandlerImpl) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.GetEmployeeBalances(r.Context(), chi.URLParam(r, "employeeID"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpdateBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BalanceID = chi.URLParam(r, "id")

	claims := middleware.GetClaims(r)
	if err := h.leaveService.UpdateBalance(r.Context(), claims.ClientID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Balance updated successfully", nil)
}

// CreateRequest implements LeaveHandler. Accepts multipart form data so a
// supporting document can ride along; the upload is best effort and its
// failure does not block the request.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	req, ok := h.parseCreateRequest(w, r, claims.EmployeeID)
	if !ok {
		return
	}

	resp, err := h.leaveService.CreateLeaveRequest(r.Context(), claims.EmployeeID, claims.ClientID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", resp)
}

func (h *LeaveHandlerImpl) parseCreateRequest(w http.ResponseWriter, r *http.Request, employeeID string) (leave.CreateLeaveRequest, bool) {
	var req leave.CreateLeaveRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			response.BadRequest(w, "Invalid multipart form", nil)
			return req, false
		}

		req.LeaveTypeID = r.FormValue("leave_type_id")
		req.StartDate = r.FormValue("start_date")
		req.ResumptionDate = r.FormValue("resumption_date")
		req.Reason = r.FormValue("reason")
		req.Duration, _ = strconv.Atoi(r.FormValue("duration"))

		if f, header, err := r.FormFile("document"); err == nil {
			defer f.Close()
			path, upErr := h.fileService.UploadLeaveDocument(r.Context(), employeeID, f, header.Filename)
			if upErr != nil {
				slog.Warn("Leave document upload failed", "employee_id", employeeID, "error", upErr)
			} else {
				req.DocumentURL = &path
			}
		}
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	return req, true
}

// Decide implements LeaveHandler. The caller's role picks the approval
// stage: line managers act on their reports' requests, client admins on
// manager-endorsed ones, super admins across every client.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveID = chi.URLParam(r, "id")

	claims := middleware.GetClaims(r)

	var err error
	switch user.Role(claims.Role) {
	case user.RoleSuperAdmin:
		err = h.leaveService.DecideAsSuperAdmin(r.Context(), claims.UserID, req)
	case user.RoleClientAdmin:
		err = h.leaveService.DecideAsClientAdmin(r.Context(), claims.EmployeeID, claims.ClientID, req)
	default:
		err = h.leaveService.DecideAsLineManager(r.Context(), claims.EmployeeID, claims.ClientID, req)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Decision recorded successfully", nil)
}

// GetRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func parseListFilter(r *http.Request) leave.ListFilter {
	filter := leave.ListFilter{}
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := leave.Status(v)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}

func writeList(w http.ResponseWriter, resp leave.ListLeaveResponse) {
	response.SuccessWithMeta(w, resp.Items, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalItems,
		TotalPages: resp.TotalPages,
	})
}

// ListRequests implements LeaveHandler. Client admin scope.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.leaveService.ListLeaveRequests(r.Context(), claims.ClientID, parseListFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, resp)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	filter := parseListFilter(r)
	filter.EmployeeID = &claims.EmployeeID

	resp, err := h.leaveService.ListLeaveRequests(r.Context(), claims.ClientID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, resp)
}

// GetManagedRequests implements LeaveHandler. Requests awaiting the caller
// as line manager.
func (h *LeaveHandlerImpl) GetManagedRequests(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims.EmployeeID == "" {
		response.NotFound(w, "Employee not found")
		return
	}

	filter := parseListFilter(r)
	filter.LineManagerID = &claims.EmployeeID

	resp, err := h.leaveService.ListLeaveRequests(r.Context(), claims.ClientID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, resp)
}

// ListAllRequests implements LeaveHandler. Super admin scope across clients.
func (h *LeaveHandlerImpl) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.ListAllLeaveRequests(r.Context(), parseListFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, resp)
}

// DeleteRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if err := h.leaveService.DeleteLeaveRequest(r.Context(), chi.URLParam(r, "id"), claims.ClientID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}
