package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/salary"
	"github.com/stafftrack/workforce-backend-go/internal/handler/http/response"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jobs"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateAsync(w http.ResponseWriter, r *http.Request)
	JobStatus(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.Service
	jobStore      *jobs.Store
}

func NewSalaryHandler(salaryService salary.Service, jobStore *jobs.Store) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
		jobStore:      jobStore,
	}
}

// Generate implements SalaryHandler.
func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.salaryService.GenerateMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GenerateAsync implements SalaryHandler.
func (h *salaryHandlerImpl) GenerateAsync(w http.ResponseWriter, r *http.Request) {
	var req salary.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	jobID, err := h.salaryService.GenerateMonthlyReportAsync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Report generation started", map[string]string{"job_id": jobID})
}

// JobStatus implements SalaryHandler.
func (h *salaryHandlerImpl) JobStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := h.jobStore.Get(chi.URLParam(r, "jobID"))
	if !ok {
		response.NotFound(w, "Job not found")
		return
	}

	response.Success(w, status)
}
