package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/leavehq/leave-backend-go/internal/domain/report"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	LeaveAnalytics(w http.ResponseWriter, r *http.Request)
	BalanceUtilization(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// LeaveAnalytics implements ReportHandler. Defaults to the current year.
func (h *ReportHandlerImpl) LeaveAnalytics(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.HandleError(w, report.ErrInvalidYear)
			return
		}
		year = parsed
	}

	claims := middleware.GetClaims(r)
	resp, err := h.reportService.LeaveAnalytics(r.Context(), claims.ClientID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// BalanceUtilization implements ReportHandler.
func (h *ReportHandlerImpl) BalanceUtilization(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	resp, err := h.reportService.BalanceUtilization(r.Context(), claims.ClientID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
