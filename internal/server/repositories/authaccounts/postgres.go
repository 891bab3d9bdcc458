package authaccounts

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

func (r *PostgresRepository) Create(ctx context.Context, account *models.AuthAccount) (*models.AuthAccount, error) {

	query :=
		`INSERT INTO auth_accounts (user_id, provider_type, provider_user_id, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.UserID, account.ProviderType, account.ProviderUserID, account.PasswordHash).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) FindByProvider(ctx context.Context, userID string, provider models.ProviderType) (*models.AuthAccount, error) {
	query :=
		`SELECT id, user_id, provider_type, provider_user_id, password_hash, created_at, updated_at
		 FROM auth_accounts
		 WHERE user_id = $1 AND provider_type = $2
		 `

	account := &models.AuthAccount{}
	err := r.db.QueryRowContext(ctx, query, userID, provider).
		Scan(&account.ID, &account.UserID, &account.ProviderType,
			&account.ProviderUserID, &account.PasswordHash,
			&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) UpdateProviderUserID(ctx context.Context, id string, providerUserID string) error {
	query :=
		`UPDATE auth_accounts
		 SET provider_user_id = $2, updated_at = now()
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, providerUserID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
