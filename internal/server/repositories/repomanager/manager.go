// Package repomanager wires repository constructors together and exposes a
// schema migration hook. Services hold a RepositoryManager and bind
// repositories to either the shared *sql.DB or a transaction handle.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/authaccounts"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/games"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/usergames"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	AuthAccounts(db dbx.DBTX) authaccounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Games(db dbx.DBTX) games.Repository
	UserGames(db dbx.DBTX) usergames.Repository
}
