package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stafftrack/workforce-backend-go/internal/domain/advance"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

type ServiceImpl struct {
	tx          database.TxRunner
	advanceRepo advance.Repository
	workerRepo  worker.Repository
	now         func() time.Time
}

func NewService(tx database.TxRunner, advanceRepo advance.Repository, workerRepo worker.Repository) *ServiceImpl {
	return &ServiceImpl{
		tx:          tx,
		advanceRepo: advanceRepo,
		workerRepo:  workerRepo,
		now:         time.Now,
	}
}

func (s *ServiceImpl) Issue(ctx context.Context, req advance.IssueRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	w, err := s.workerRepo.GetByID(ctx, tenant, req.WorkerID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	now := s.now().UTC()
	a := advance.Advance{
		ID:              uuid.NewString(),
		Tenant:          tenant,
		WorkerID:        w.ID,
		Amount:          req.Amount,
		RemainingAmount: req.Amount,
		Deductions:      []advance.Deduction{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := s.advanceRepo.Create(ctx, a)
		if err != nil {
			return fmt.Errorf("failed to create advance: %w", err)
		}
		a = created

		// Issuing cash lowers the running balance.
		if err := s.workerRepo.AdjustFinalSalary(ctx, tenant, w.ID, req.Amount.Neg()); err != nil {
			return fmt.Errorf("failed to adjust final salary: %w", err)
		}
		return nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	a.WorkerName = &w.Name
	return toResponse(a), nil
}

func (s *ServiceImpl) Deduct(ctx context.Context, req advance.DeductRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	var a advance.Advance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err = s.advanceRepo.GetByID(ctx, tenant, req.AdvanceID)
		if err != nil {
			return err
		}

		if !a.RemainingAmount.IsPositive() {
			return advance.ErrAdvanceAlreadySettled
		}
		if req.Amount.GreaterThan(a.RemainingAmount) {
			return advance.ErrDeductionExceedsBalance
		}

		a.Deductions = append(a.Deductions, advance.Deduction{
			Amount:      req.Amount,
			Date:        s.now().UTC(),
			Description: req.Description,
		})
		a.RemainingAmount = a.RemainingAmount.Sub(req.Amount)
		a.UpdatedAt = s.now().UTC()

		if err := s.advanceRepo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to update advance: %w", err)
		}

		// Repayment restores the running balance.
		if err := s.workerRepo.AdjustFinalSalary(ctx, tenant, a.WorkerID, req.Amount); err != nil {
			return fmt.Errorf("failed to adjust final salary: %w", err)
		}
		return nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return toResponse(a), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	a, err := s.advanceRepo.GetByID(ctx, tenant, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return toResponse(a), nil
}

func (s *ServiceImpl) ListByWorker(ctx context.Context, workerID string) ([]advance.AdvanceResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	advances, err := s.advanceRepo.ListByWorker(ctx, tenant, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, toResponse(a))
	}
	return responses, nil
}

func toResponse(a advance.Advance) advance.AdvanceResponse {
	deductions := make([]advance.DeductionResponse, 0, len(a.Deductions))
	for _, d := range a.Deductions {
		deductions = append(deductions, advance.DeductionResponse{
			Amount:      d.Amount,
			Date:        d.Date.Format(timeutil.DayKeyLayout),
			Description: d.Description,
		})
	}

	resp := advance.AdvanceResponse{
		ID:              a.ID,
		WorkerID:        a.WorkerID,
		Amount:          a.Amount,
		RemainingAmount: a.RemainingAmount,
		Deductions:      deductions,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
	if a.WorkerName != nil {
		resp.WorkerName = *a.WorkerName
	}
	return resp
}
