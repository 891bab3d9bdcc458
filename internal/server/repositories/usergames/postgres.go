package usergames

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID, gameID string) (*models.UserGame, error) {

	query :=
		`INSERT INTO user_games (user_id, game_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	ug := &models.UserGame{UserID: userID, GameID: gameID}
	err := r.db.QueryRowContext(ctx, query, userID, gameID).Scan(&ug.ID, &ug.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ug, nil
}

func (r *PostgresRepository) ListGames(ctx context.Context, userID string) ([]*models.Game, error) {
	query :=
		`SELECT g.id, g.title, g.image_url, g.description, g.created_at, g.updated_at
		 FROM user_games ug
		 JOIN games g ON g.id = ug.game_id
		 WHERE ug.user_id = $1
		 ORDER BY ug.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Game
	for rows.Next() {
		game := &models.Game{}
		if err := rows.Scan(&game.ID, &game.Title, &game.ImageURL, &game.Description,
			&game.CreatedAt, &game.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, gameID string) error {
	query := `DELETE FROM user_games WHERE user_id = $1 AND game_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, gameID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
