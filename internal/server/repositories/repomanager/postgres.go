package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/server/migrations"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/authaccounts"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/games"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/usergames"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// AuthAccounts returns an authaccounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AuthAccounts(db dbx.DBTX) authaccounts.Repository {
	return authaccounts.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Profiles returns a profiles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

// Games returns a games.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Games(db dbx.DBTX) games.Repository {
	return games.NewPostgresRepository(db)
}

// UserGames returns a usergames.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) UserGames(db dbx.DBTX) usergames.Repository {
	return usergames.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
