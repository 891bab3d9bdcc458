package models

import (
	"database/sql"
	"time"
)

// UserProfile holds the public-facing fields a user fills in after
// registration. The row is keyed by the owning user id.
type UserProfile struct {
	UserID    string
	Username  sql.NullString
	FirstName sql.NullString
	LastName  sql.NullString
	Tagline   sql.NullString
	Bio       sql.NullString
	AvatarURL sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
