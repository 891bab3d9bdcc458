package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/authaccounts"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/games"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/usergames"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	var _ users.Repository = m.Users(db)
	var _ authaccounts.Repository = m.AuthAccounts(db)
	var _ refreshtokens.Repository = m.RefreshTokens(db)
	var _ profiles.Repository = m.Profiles(db)
	var _ games.Repository = m.Games(db)
	var _ usergames.Repository = m.UserGames(db)
}

func TestRunMigrations_PropagatesError(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	boom := errors.New("migrate boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); !errors.Is(err, boom) {
		t.Fatalf("want propagated error, got %v", err)
	}
}
