package salary

import "context"

type Service interface {
	// GenerateMonthlyReport computes one row per worker for the tenant and
	// month. Running it twice with unchanged data yields identical output.
	GenerateMonthlyReport(ctx context.Context, req ReportRequest) ([]ReportRow, error)

	// GenerateMonthlyReportAsync runs the report in the background and
	// returns a job ID to poll.
	GenerateMonthlyReportAsync(ctx context.Context, req ReportRequest) (string, error)
}
