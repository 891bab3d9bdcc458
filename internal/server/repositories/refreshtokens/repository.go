// Package refreshtokens declares the server-side repository contract for the
// refresh-token revocation ledger.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over refresh-token ledger rows. Rows are
// append/seal-only: token_hash and expires_at are never updated after
// insert, and rows are never deleted (kept for audit and idempotent
// revocation checks).
type Repository interface {
	// Create inserts a ledger row for userID holding the one-way hash of an
	// issued refresh token and its absolute expiry.
	Create(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error

	// FindByHash looks up a ledger row by token hash and returns it.
	// Returns common.ErrorNotFound when the hash is absent.
	FindByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Revoke seals the row with the given id by setting revoked_at.
	// Revoking an already-sealed row leaves its original revoked_at intact.
	Revoke(ctx context.Context, id string) error
}
