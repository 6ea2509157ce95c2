package jwt

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/workforce-backend-go/internal/pkg/validator"
)

var (
	ErrClaimMissing = errors.New("required token claim is missing")
	ErrClaimInvalid = errors.New("token claim is malformed")
)

func claimString(ctx context.Context, name string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	value, ok := claims[name].(string)
	if !ok || value == "" {
		return "", ErrClaimMissing
	}
	return value, nil
}

// TenantFromContext extracts the tenant slug the verified token was issued
// for. Every service call is scoped by it, so a malformed slug is rejected
// here rather than reaching a query.
func TenantFromContext(ctx context.Context) (string, error) {
	tenant, err := claimString(ctx, "tenant")
	if err != nil {
		return "", err
	}
	if !validator.IsValidTenant(tenant) {
		return "", ErrClaimInvalid
	}
	return tenant, nil
}

func WorkerIDFromContext(ctx context.Context) (string, error) {
	return claimString(ctx, "worker_id")
}

func RoleFromContext(ctx context.Context) (string, error) {
	return claimString(ctx, "role")
}
