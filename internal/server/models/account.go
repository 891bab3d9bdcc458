package models

import (
	"database/sql"
	"time"
)

// ProviderType identifies an authentication method bound to a user.
type ProviderType string

const (
	ProviderPassword ProviderType = "password"
	ProviderGoogle   ProviderType = "google"
)

// AuthAccount is one credential binding per (user, provider) pair.
// PasswordHash is set only for the password provider; ProviderUserID only
// for federated providers.
type AuthAccount struct {
	ID             string
	UserID         string
	ProviderType   ProviderType
	ProviderUserID sql.NullString
	PasswordHash   sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FederatedIdentity is the profile a federated provider asserts about a user.
type FederatedIdentity struct {
	Email      string
	ExternalID string
	FirstName  string
	LastName   string
	PictureURL string
}

// NullString wraps a string into sql.NullString, mapping "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
