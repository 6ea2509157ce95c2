package settings

import "context"

type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)

	// Update merges the provided sections into the tenant's settings row,
	// creating it on first write. Moving a locked geofence is rejected.
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
