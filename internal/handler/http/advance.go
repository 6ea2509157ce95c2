package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
	Deduct(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByWorker(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.Service
}

func NewAdvanceHandler(advanceService advance.Service) AdvanceHandler {
	return &advanceHandlerImpl{
		advanceService: advanceService,
	}
}

// Issue implements AdvanceHandler.
func (h *advanceHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	var req advance.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.advanceService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance issued", result)
}

// Deduct implements AdvanceHandler.
func (h *advanceHandlerImpl) Deduct(w http.ResponseWriter, r *http.Request) {
	var req advance.DeductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AdvanceID = chi.URLParam(r, "advanceID")

	result, err := h.advanceService.Deduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction recorded", result)
}

// Get implements AdvanceHandler.
func (h *advanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.Get(r.Context(), chi.URLParam(r, "advanceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByWorker implements AdvanceHandler.
func (h *advanceHandlerImpl) ListByWorker(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.ListByWorker(r.Context(), chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
