package settings

import "context"

type Repository interface {
	GetByTenant(ctx context.Context, tenant string) (Settings, error)

	Upsert(ctx context.Context, s Settings) (Settings, error)

	// SetDailyReportSent flips the per-tenant "report already sent" flag.
	SetDailyReportSent(ctx context.Context, tenant string, sent bool) error

	// ResetDailyReportFlags clears the flag for every tenant. Runs from the
	// midnight cron sweep; returns the number of tenants touched.
	ResetDailyReportFlags(ctx context.Context) (int64, error)

	// DistinctTenants lists every tenant with a settings row.
	DistinctTenants(ctx context.Context) ([]string, error)
}
