package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, svc Service, claims map[string]interface{}) context.Context {
	t.Helper()
	token, _, err := svc.JWTAuth().Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestJWTAuth_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"tenant":    "acme",
		"worker_id": "w1",
		"role":      "admin",
		"type":      "access",
	})
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	tenant, ok := token.Get("tenant")
	require.True(t, ok)
	assert.Equal(t, "acme", tenant)
}

func TestClaimsFromContext(t *testing.T) {
	svc := NewJWTService("test-secret")
	ctx := contextWithClaims(t, svc, map[string]interface{}{
		"tenant":    "acme",
		"worker_id": "w1",
		"role":      "admin",
		"type":      "access",
	})

	tenant, err := TenantFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant)

	workerID, err := WorkerIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "w1", workerID)

	role, err := RoleFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestTenantFromContext_MissingClaim(t *testing.T) {
	svc := NewJWTService("test-secret")
	ctx := contextWithClaims(t, svc, map[string]interface{}{
		"worker_id": "w1",
		"type":      "access",
	})

	_, err := TenantFromContext(ctx)
	assert.ErrorIs(t, err, ErrClaimMissing)
}

func TestTenantFromContext_MalformedSlug(t *testing.T) {
	svc := NewJWTService("test-secret")

	for _, tenant := range []string{"Acme", "ab", "acme.corp"} {
		ctx := contextWithClaims(t, svc, map[string]interface{}{
			"tenant": tenant,
			"type":   "access",
		})

		_, err := TenantFromContext(ctx)
		assert.ErrorIs(t, err, ErrClaimInvalid, tenant)
	}
}
