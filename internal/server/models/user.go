// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the coarse authorization flag carried by a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the durable identity anchor. Credentials live in AuthAccount rows;
// a User row itself carries no secrets.
type User struct {
	ID            string
	Email         string
	EmailVerified bool
	IsActive      bool
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
