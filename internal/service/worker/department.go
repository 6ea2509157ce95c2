package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stafftrack/workforce-backend-go/internal/domain/department"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
)

// DepartmentServiceImpl lives alongside the worker service; departments are
// pure lookup data for workers and punches.
type DepartmentServiceImpl struct {
	departmentRepo department.Repository
	now            func() time.Time
}

func NewDepartmentService(departmentRepo department.Repository) *DepartmentServiceImpl {
	return &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		now:            time.Now,
	}
}

func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	existing, err := s.departmentRepo.ListByTenant(ctx, tenant)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to list departments: %w", err)
	}
	for _, d := range existing {
		if strings.EqualFold(d.Name, req.Name) {
			return department.DepartmentResponse{}, department.ErrDepartmentExists
		}
	}

	now := s.now().UTC()
	d := department.Department{
		ID:        uuid.NewString(),
		Tenant:    tenant,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.departmentRepo.Create(ctx, d)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}
	return toDepartmentResponse(created), nil
}

func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	d, err := s.departmentRepo.GetByID(ctx, tenant, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.DepartmentResponse{}, err
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to get department: %w", err)
	}
	return toDepartmentResponse(d), nil
}

func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	departments, err := s.departmentRepo.ListByTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, toDepartmentResponse(d))
	}
	return responses, nil
}

func toDepartmentResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}
