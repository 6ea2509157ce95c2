package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stafftrack/workforce-backend-go/internal/domain/leave"
	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/domain/worker"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

type ServiceImpl struct {
	tx           database.TxRunner
	leaveRepo    leave.Repository
	workerRepo   worker.Repository
	settingsRepo settings.Repository
	now          func() time.Time
}

func NewService(tx database.TxRunner, leaveRepo leave.Repository, workerRepo worker.Repository, settingsRepo settings.Repository) *ServiceImpl {
	return &ServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		workerRepo:   workerRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *ServiceImpl) Request(ctx context.Context, req leave.RequestLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	w, err := s.workerRepo.GetByID(ctx, tenant, req.WorkerID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if req.Type == string(leave.TypePermission) {
		startMin, err := timeutil.ParseWallClock(*req.StartTime)
		if err != nil {
			return leave.LeaveResponse{}, leave.ErrInvalidPermissionTime
		}
		endMin, err := timeutil.ParseWallClock(*req.EndTime)
		if err != nil || endMin <= startMin {
			return leave.LeaveResponse{}, leave.ErrInvalidPermissionTime
		}
	}

	start, _ := time.Parse(timeutil.DayKeyLayout, req.StartDate)
	end, _ := time.Parse(timeutil.DayKeyLayout, req.EndDate)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	now := s.now().UTC()
	l := leave.Leave{
		ID:        uuid.NewString(),
		Tenant:    tenant,
		WorkerID:  w.ID,
		Type:      leave.LeaveType(req.Type),
		Status:    leave.StatusPending,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: totalDays,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.leaveRepo.Create(ctx, l)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	created.WorkerName = &w.Name
	return toResponse(created), nil
}

func (s *ServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	var l leave.Leave
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		l, err = s.leaveRepo.GetByID(ctx, tenant, id)
		if err != nil {
			return err
		}
		if l.Status != leave.StatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		w, err := s.workerRepo.GetByID(ctx, tenant, l.WorkerID)
		if err != nil {
			return err
		}

		amount, err := s.deductionFor(ctx, tenant, l, w)
		if err != nil {
			return err
		}

		l.Status = leave.StatusApproved
		l.DeductedAmount = &amount
		l.UpdatedAt = s.now().UTC()

		if err := s.leaveRepo.UpdateStatus(ctx, l); err != nil {
			return fmt.Errorf("failed to update leave status: %w", err)
		}

		if amount.IsPositive() {
			if err := s.workerRepo.AdjustFinalSalary(ctx, tenant, w.ID, amount.Neg()); err != nil {
				return fmt.Errorf("failed to adjust final salary: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(l), nil
}

// deductionFor prices an approved leave. Day-granularity types cost
// totalDays x the stored nominal per-day salary. Permission leaves cost the
// absent minutes' share of one nominal day, measured against the tenant's
// required hours.
func (s *ServiceImpl) deductionFor(ctx context.Context, tenant string, l leave.Leave, w worker.Worker) (decimal.Decimal, error) {
	if l.Type != leave.TypePermission {
		return w.NominalPerDaySalary.Mul(decimal.NewFromInt(int64(l.TotalDays))).Round(2), nil
	}

	if l.StartTime == nil || l.EndTime == nil {
		return decimal.Zero, leave.ErrInvalidPermissionTime
	}
	startMin, err := timeutil.ParseWallClock(*l.StartTime)
	if err != nil {
		return decimal.Zero, leave.ErrInvalidPermissionTime
	}
	endMin, err := timeutil.ParseWallClock(*l.EndTime)
	if err != nil || endMin <= startMin {
		return decimal.Zero, leave.ErrInvalidPermissionTime
	}

	cfg, err := s.settingsRepo.GetByTenant(ctx, tenant)
	if err != nil {
		return decimal.Zero, err
	}
	requiredMinutes := cfg.RequiredHoursFor(w.ID) * 60
	if requiredMinutes <= 0 {
		return decimal.Zero, nil
	}

	absent := decimal.NewFromInt(int64(endMin - startMin))
	fraction := absent.Div(decimal.NewFromFloat(requiredMinutes))
	return w.NominalPerDaySalary.Mul(fraction).Round(2), nil
}

func (s *ServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	l, err := s.leaveRepo.GetByID(ctx, tenant, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if l.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	l.Status = leave.StatusRejected
	l.UpdatedAt = s.now().UTC()
	if err := s.leaveRepo.UpdateStatus(ctx, l); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	return toResponse(l), nil
}

func (s *ServiceImpl) ListByWorker(ctx context.Context, workerID string) ([]leave.LeaveResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	leaves, err := s.leaveRepo.ListByWorker(ctx, tenant, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return toResponses(leaves), nil
}

func (s *ServiceImpl) List(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	leaves, err := s.leaveRepo.ListByTenant(ctx, tenant, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return toResponses(leaves), nil
}

func toResponses(leaves []leave.Leave) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}
	return responses
}

func toResponse(l leave.Leave) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:             l.ID,
		WorkerID:       l.WorkerID,
		Type:           string(l.Type),
		Status:         string(l.Status),
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		TotalDays:      l.TotalDays,
		StartTime:      l.StartTime,
		EndTime:        l.EndTime,
		Reason:         l.Reason,
		DeductedAmount: l.DeductedAmount,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.WorkerName != nil {
		resp.WorkerName = *l.WorkerName
	}
	return resp
}
