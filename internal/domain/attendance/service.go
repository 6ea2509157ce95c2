package attendance

import (
	"context"
)

// Service defines business logic for punch intake and attendance reporting.
type Service interface {
	// Punch records a punch action for the worker holding the given RFID.
	// When the request carries no explicit presence flag the service resolves
	// it from the worker's last event, synthesizing a missed-punch correction
	// first if the last event is an open IN from an earlier day.
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// WorkerReport reconstructs per-day in/out pairs and worked duration for
	// a worker over a date range, most recent day first.
	WorkerReport(ctx context.Context, filter ReportFilter) ([]DaySummary, error)
}
