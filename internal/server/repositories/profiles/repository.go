// Package profiles declares the repository contract for user profile rows.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over user_profiles rows. The table is keyed
// by user id; username uniqueness is enforced by the database and surfaces
// as common.ErrorConflict.
type Repository interface {
	// Create inserts a profile row for a user. Each user has at most one.
	Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)

	// GetByUserID returns the profile for userID, or common.ErrorNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)

	// Update persists the mutable profile fields. Duplicate username yields
	// common.ErrorConflict.
	Update(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}
