package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
)

type ServiceImpl struct {
	settingsRepo settings.Repository
	now          func() time.Time
}

func NewService(settingsRepo settings.Repository) *ServiceImpl {
	return &ServiceImpl{
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *ServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	cfg, err := s.settingsRepo.GetByTenant(ctx, tenant)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return toResponse(cfg), nil
}

func (s *ServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	tenant, err := jwt.TenantFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	cfg, err := s.settingsRepo.GetByTenant(ctx, tenant)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
		}
		cfg = settings.Settings{
			ID:                 uuid.NewString(),
			Tenant:             tenant,
			MonthlyWorkingDays: make(map[string]int),
			CreatedAt:          s.now().UTC(),
		}
	}

	if req.Timer != nil {
		cfg.Timer = *req.Timer
	}

	if req.Geofence != nil {
		// A locked geofence keeps its coordinates; only enable/disable and
		// radius may change.
		if cfg.Geofence.Locked {
			moved := req.Geofence.Latitude != cfg.Geofence.Latitude ||
				req.Geofence.Longitude != cfg.Geofence.Longitude
			if moved {
				return settings.SettingsResponse{}, settings.ErrGeofenceLocked
			}
		}
		locked := cfg.Geofence.Locked
		cfg.Geofence = *req.Geofence
		cfg.Geofence.Locked = locked || req.Geofence.Locked
	}

	if req.MonthlyWorkingDays != nil {
		if cfg.MonthlyWorkingDays == nil {
			cfg.MonthlyWorkingDays = make(map[string]int)
		}
		for month, days := range req.MonthlyWorkingDays {
			cfg.MonthlyWorkingDays[month] = days
		}
	}

	cfg.UpdatedAt = s.now().UTC()

	saved, err := s.settingsRepo.Upsert(ctx, cfg)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return toResponse(saved), nil
}

func toResponse(cfg settings.Settings) settings.SettingsResponse {
	return settings.SettingsResponse{
		Tenant:             cfg.Tenant,
		Timer:              cfg.Timer,
		MonthlyWorkingDays: cfg.MonthlyWorkingDays,
		Geofence:           cfg.Geofence,
		DailyReportSent:    cfg.DailyReportSent,
	}
}
