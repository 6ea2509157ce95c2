package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafftrack/workforce-backend-go/internal/domain/settings"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

// Timer config, geofence and the monthly working-days map are JSONB columns;
// the settings row is one-per-tenant and always read whole.
type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

func scanSettings(row pgx.Row) (settings.Settings, error) {
	var (
		s               settings.Settings
		timerJSON       []byte
		workingDaysJSON []byte
		geofenceJSON    []byte
	)

	err := row.Scan(
		&s.ID, &s.Tenant, &timerJSON, &workingDaysJSON, &geofenceJSON,
		&s.DailyReportSent, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return settings.Settings{}, err
	}

	if err := json.Unmarshal(timerJSON, &s.Timer); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode timer config: %w", err)
	}
	if err := json.Unmarshal(workingDaysJSON, &s.MonthlyWorkingDays); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode working days: %w", err)
	}
	if err := json.Unmarshal(geofenceJSON, &s.Geofence); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode geofence: %w", err)
	}

	return s, nil
}

// GetByTenant implements settings.Repository.
func (r *settingsRepositoryImpl) GetByTenant(ctx context.Context, tenant string) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant, timer, monthly_working_days, geofence,
			daily_report_sent, created_at, updated_at
		FROM attendance_settings
		WHERE tenant = $1
	`

	s, err := scanSettings(q.QueryRow(ctx, query, tenant))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.Repository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	timerJSON, err := json.Marshal(s.Timer)
	if err != nil {
		return settings.Settings{}, err
	}
	if s.MonthlyWorkingDays == nil {
		s.MonthlyWorkingDays = map[string]int{}
	}
	workingDaysJSON, err := json.Marshal(s.MonthlyWorkingDays)
	if err != nil {
		return settings.Settings{}, err
	}
	geofenceJSON, err := json.Marshal(s.Geofence)
	if err != nil {
		return settings.Settings{}, err
	}

	query := `
		INSERT INTO attendance_settings (
			id, tenant, timer, monthly_working_days, geofence,
			daily_report_sent, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (tenant) DO UPDATE
		SET timer = EXCLUDED.timer,
			monthly_working_days = EXCLUDED.monthly_working_days,
			geofence = EXCLUDED.geofence,
			updated_at = EXCLUDED.updated_at
		RETURNING id, tenant, timer, monthly_working_days, geofence,
			daily_report_sent, created_at, updated_at
	`

	saved, err := scanSettings(q.QueryRow(ctx, query,
		s.ID, s.Tenant, timerJSON, workingDaysJSON, geofenceJSON,
		s.DailyReportSent, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return saved, nil
}

// SetDailyReportSent implements settings.Repository.
func (r *settingsRepositoryImpl) SetDailyReportSent(ctx context.Context, tenant string, sent bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_settings
		SET daily_report_sent = $1, updated_at = NOW()
		WHERE tenant = $2
	`

	if _, err := q.Exec(ctx, query, sent, tenant); err != nil {
		return fmt.Errorf("failed to set daily report flag: %w", err)
	}
	return nil
}

// ResetDailyReportFlags implements settings.Repository.
func (r *settingsRepositoryImpl) ResetDailyReportFlags(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_settings
		SET daily_report_sent = FALSE, updated_at = NOW()
		WHERE daily_report_sent = TRUE
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily report flags: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DistinctTenants implements settings.Repository.
func (r *settingsRepositoryImpl) DistinctTenants(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tenant
		FROM attendance_settings
		ORDER BY tenant ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var tenant string
		if err := rows.Scan(&tenant); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tenants, nil
}
