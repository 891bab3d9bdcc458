// Package users declares the repository contract for durable user
// identity records.
package users

import (
	"context"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over user rows. The users table is owned
// exclusively by this repository; uniqueness of email is enforced by the
// database, and a losing concurrent insert surfaces as common.ErrorConflict.
type Repository interface {
	// Create inserts a new user and returns it with the generated id
	// and timestamps filled in. Duplicate email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
