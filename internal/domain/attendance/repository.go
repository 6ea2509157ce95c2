package attendance

import (
	"context"
)

// EventRepository defines data access for the append-only punch log.
// Every method scoped to a tenant must filter by it; the log holds all
// tenants' events in one table.
type EventRepository interface {
	// Create appends a new event. Events are never updated or deleted.
	Create(ctx context.Context, event Event) (Event, error)

	// LastByWorker returns the most recent event for a worker by created_at,
	// or nil if the worker has never punched.
	LastByWorker(ctx context.Context, tenant string, workerID string) (*Event, error)

	// ListByWorkerRange returns all events for a worker with day keys in
	// [startKey, endKey], ordered by created_at ascending.
	ListByWorkerRange(ctx context.Context, tenant string, workerID string, startKey, endKey string) ([]Event, error)

	// ListLatestForDate returns, for every (tenant, rfid) with at least one
	// event on the given day, the most recent such event. Used by the daily
	// auto-close sweep, which runs across all tenants in one pass.
	ListLatestForDate(ctx context.Context, dayKey string) ([]Event, error)
}
