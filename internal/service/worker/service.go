package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
)

// nominalDivisor fixes the stored per-day figure at salary/30 regardless of
// the month. Reports compute their own divisor from configured working days.
var nominalDivisor = decimal.NewFromInt(30)

type ServiceImpl struct {
	tx             database.TxRunner
	workerRepo     worker.Repository
	departmentRepo department.Repository
	now            func() time.Time
}

func NewService(tx database.TxRunner, workerRepo worker.Repository, departmentRepo department.Repository) *ServiceImpl {
	return &ServiceImpl{
		tx:             tx,
		workerRepo:     workerRepo,
		departmentRepo: departmentRepo,
		now:            time.Now,
	}
}

func (s *ServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	dept, err := s.departmentRepo.GetByID(ctx, tenant, req.DepartmentID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if _, err := s.workerRepo.GetByRFID(ctx, tenant, req.RFID); err == nil {
		return worker.WorkerResponse{}, worker.ErrRFIDExists
	} else if !errors.Is(err, worker.ErrWorkerNotFound) {
		return worker.WorkerResponse{}, fmt.Errorf("failed to check rfid: %w", err)
	}

	now := s.now().UTC()
	w := worker.Worker{
		ID:                  uuid.NewString(),
		Tenant:              tenant,
		Name:                req.Name,
		RFID:                req.RFID,
		DepartmentID:        dept.ID,
		DepartmentName:      dept.Name,
		Salary:              req.Salary,
		FinalSalary:         req.Salary,
		NominalPerDaySalary: req.Salary.Div(nominalDivisor).Round(2),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.workerRepo.Create(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return toResponse(created), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	w, err := s.workerRepo.GetByID(ctx, tenant, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return toResponse(w), nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]worker.WorkerResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	workers, err := s.workerRepo.ListByTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, toResponse(w))
	}
	return responses, nil
}

func (s *ServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	var w worker.Worker
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		w, err = s.workerRepo.GetByID(ctx, tenant, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			w.Name = *req.Name
		}

		if req.DepartmentID != nil {
			dept, err := s.departmentRepo.GetByID(ctx, tenant, *req.DepartmentID)
			if err != nil {
				return err
			}
			w.DepartmentID = dept.ID
			w.DepartmentName = dept.Name
		}

		if req.Salary != nil {
			// Shift the running balance by the raise/cut so deductions
			// already applied against the old salary stay applied.
			delta := req.Salary.Sub(w.Salary)
			w.Salary = *req.Salary
			w.FinalSalary = w.FinalSalary.Add(delta)
			w.NominalPerDaySalary = req.Salary.Div(nominalDivisor).Round(2)
		}

		w.UpdatedAt = s.now().UTC()
		if err := s.workerRepo.Update(ctx, w); err != nil {
			return fmt.Errorf("failed to update worker: %w", err)
		}
		return nil
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toResponse(w), nil
}

func toResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:                  w.ID,
		Name:                w.Name,
		RFID:                w.RFID,
		DepartmentID:        w.DepartmentID,
		DepartmentName:      w.DepartmentName,
		Salary:              w.Salary,
		FinalSalary:         w.FinalSalary,
		NominalPerDaySalary: w.NominalPerDaySalary,
		CreatedAt:           w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           w.UpdatedAt.Format(time.RFC3339),
	}
}
