// Package usergames declares the repository contract for per-user game
// libraries (the user_games link table).
package usergames

import (
	"context"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over user_games rows. Uniqueness of
// (user_id, game_id) is enforced by the database; adding the same game
// twice surfaces as common.ErrorConflict.
type Repository interface {
	// Add links a game into a user's library.
	Add(ctx context.Context, userID, gameID string) (*models.UserGame, error)

	// ListGames returns the games in a user's library, newest first.
	ListGames(ctx context.Context, userID string) ([]*models.Game, error)

	// Remove unlinks a game from a user's library. Returns
	// common.ErrorNotFound when the game was not in the library.
	Remove(ctx context.Context, userID, gameID string) error
}
