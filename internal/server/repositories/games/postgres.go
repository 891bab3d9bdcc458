package games

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Create(ctx context.Context, game *models.Game) (*models.Game, error) {

	query :=
		`INSERT INTO games (title, image_url, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, game.Title, game.ImageURL, game.Description).
		Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return game, nil
}

func (r *PostgresRepository) GetByTitle(ctx context.Context, title string) (*models.Game, error) {
	query :=
		`SELECT id, title, image_url, description, created_at, updated_at
		 FROM games
		 WHERE lower(title) = lower($1)
		 `

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, title).
		Scan(&game.ID, &game.Title, &game.ImageURL, &game.Description,
			&game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return game, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query :=
		`SELECT id, title, image_url, description, created_at, updated_at
		 FROM games
		 WHERE id = $1
		 `

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&game.ID, &game.Title, &game.ImageURL, &game.Description,
			&game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return game, nil
}

func (r *PostgresRepository) List(ctx context.Context, titleFilter string, limit, offset int) ([]*models.Game, error) {
	query :=
		`SELECT id, title, image_url, description, created_at, updated_at
		 FROM games
		 WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		 ORDER BY title
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, titleFilter, limit, offset)
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

func (r *PostgresRepository) Count(ctx context.Context, titleFilter string) (int64, error) {
	query :=
		`SELECT count(*)
		 FROM games
		 WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		 `

	var total int64
	if err := r.db.QueryRowContext(ctx, query, titleFilter).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, game *models.Game) (*models.Game, error) {
	query :=
		`UPDATE games
		 SET title = $2, image_url = $3, description = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, game.ID, game.Title, game.ImageURL, game.Description).
		Scan(&game.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return game, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM games WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
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
