package postgresql

import (
	"context"

	"github.com/stafftrack/workforce-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx when one is open, else
// the pool. Every repository method goes through it so the same code runs
// inside and outside a transaction boundary.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	return database.QuerierFromContext(ctx, db)
}
