package models

import "time"

// RefreshToken is a revocation-ledger entry for one issued refresh token.
// Only the SHA-256 hash of the opaque token string is stored; rows are
// never deleted, and only RevokedAt is ever mutated.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
