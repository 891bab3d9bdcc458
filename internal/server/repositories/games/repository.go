// Package games declares the repository contract for the game catalog.
package games

import (
	"context"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over games rows. Titles are unique
// case-insensitively; a losing concurrent insert surfaces as
// common.ErrorConflict.
type Repository interface {
	// Create inserts a new catalog entry and returns it with the generated
	// id and timestamps filled in. Duplicate title yields common.ErrorConflict.
	Create(ctx context.Context, game *models.Game) (*models.Game, error)

	// GetByID returns the game with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Game, error)

	// GetByTitle returns the game whose title matches case-insensitively,
	// or common.ErrorNotFound.
	GetByTitle(ctx context.Context, title string) (*models.Game, error)

	// List returns a page of games, optionally filtered by a case-insensitive
	// title substring, ordered by title.
	List(ctx context.Context, titleFilter string, limit, offset int) ([]*models.Game, error)

	// Count returns the number of games matching the filter.
	Count(ctx context.Context, titleFilter string) (int64, error)

	// Update persists title, image and description changes.
	Update(ctx context.Context, game *models.Game) (*models.Game, error)

	// Delete removes a game. Returns common.ErrorNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
