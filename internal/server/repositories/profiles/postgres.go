package profiles

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

func (r *PostgresRepository) Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {

	query :=
		`INSERT INTO user_profiles (user_id, username, first_name, last_name, tagline, bio, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Username, profile.FirstName, profile.LastName,
		profile.Tagline, profile.Bio, profile.AvatarURL).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query :=
		`SELECT user_id, username, first_name, last_name, tagline, bio, avatar_url, created_at, updated_at
		 FROM user_profiles
		 WHERE user_id = $1
		 `

	profile := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&profile.UserID, &profile.Username, &profile.FirstName, &profile.LastName,
			&profile.Tagline, &profile.Bio, &profile.AvatarURL,
			&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) Update(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	query :=
		`UPDATE user_profiles
		 SET username = $2, first_name = $3, last_name = $4, tagline = $5, bio = $6, avatar_url = $7, updated_at = now()
		 WHERE user_id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Username, profile.FirstName, profile.LastName,
		profile.Tagline, profile.Bio, profile.AvatarURL).
		Scan(&profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}
