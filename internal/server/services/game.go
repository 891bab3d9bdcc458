package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
)

const (
	defaultGamePageSize = 20
	maxGamePageSize     = 100
)

// GameInput carries the writable catalog fields.
type GameInput struct {
	Title       string
	ImageURL    string
	Description string
}

// GameQuery selects a catalog page. Zero values fall back to page 1 with the
// default page size.
type GameQuery struct {
	Title    string
	Page     int
	PageSize int
}

// GamePage is one page of catalog results plus the total match count.
type GamePage struct {
	Games    []*models.Game `json:"games"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// GameService manages the game catalog and per-user libraries. Catalog writes
// are admin-only; libraries are always scoped to the calling user.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewGameService constructs a GameService.
func NewGameService(db *sql.DB, m repomanager.RepositoryManager) *GameService {
	return &GameService{db: db, repomanager: m}
}

// Create adds a catalog entry. Only admins may create games. Titles are
// unique case-insensitively: a duplicate yields common.ErrorConflict whether
// caught by the pre-check or by the unique index under a concurrent create.
func (s *GameService) Create(ctx context.Context, principal *models.Principal, in GameInput) (*models.Game, error) {

	if !principal.IsAdmin() {
		return nil, common.ErrorUnauthorized
	}
	if in.Title == "" {
		return nil, common.ErrBadRequest
	}

	repo := s.repomanager.Games(s.db)
	if _, err := repo.GetByTitle(ctx, in.Title); err == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorConflict, in.Title)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	game, err := repo.Create(ctx, &models.Game{
		Title:       in.Title,
		ImageURL:    models.NullString(in.ImageURL),
		Description: models.NullString(in.Description),
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, fmt.Errorf("%w: %s", common.ErrorConflict, in.Title)
		}
		return nil, common.ErrorInternal
	}
	return game, nil
}

// CreateMany adds a batch of catalog entries in one transaction. Any title
// already in the catalog, or repeated inside the batch, fails the whole batch
// with common.ErrorConflict naming the offending titles.
func (s *GameService) CreateMany(ctx context.Context, principal *models.Principal, ins []GameInput) ([]*models.Game, error) {

	if !principal.IsAdmin() {
		return nil, common.ErrorUnauthorized
	}
	if len(ins) == 0 {
		return nil, common.ErrBadRequest
	}

	seen := make(map[string]struct{}, len(ins))
	var conflicting []string
	repo := s.repomanager.Games(s.db)
	for _, in := range ins {
		if in.Title == "" {
			return nil, common.ErrBadRequest
		}
		key := strings.ToLower(in.Title)
		if _, dup := seen[key]; dup {
			conflicting = append(conflicting, in.Title)
			continue
		}
		seen[key] = struct{}{}

		if _, err := repo.GetByTitle(ctx, in.Title); err == nil {
			conflicting = append(conflicting, in.Title)
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
	}
	if len(conflicting) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrorConflict, strings.Join(conflicting, ", "))
	}

	var games []*models.Game
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Games(tx)
		for _, in := range ins {
			game, err := txRepo.Create(ctx, &models.Game{
				Title:       in.Title,
				ImageURL:    models.NullString(in.ImageURL),
				Description: models.NullString(in.Description),
			})
			if err != nil {
				if errors.Is(err, common.ErrorConflict) {
					return fmt.Errorf("%w: %s", common.ErrorConflict, in.Title)
				}
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return games, nil
}

// Get returns a single catalog entry.
func (s *GameService) Get(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.repomanager.Games(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return game, nil
}

// List returns a catalog page matching the query.
func (s *GameService) List(ctx context.Context, q GameQuery) (*GamePage, error) {

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultGamePageSize
	}
	if q.PageSize > maxGamePageSize {
		q.PageSize = maxGamePageSize
	}

	repo := s.repomanager.Games(s.db)
	total, err := repo.Count(ctx, q.Title)
	if err != nil {
		return nil, common.ErrorInternal
	}

	games, err := repo.List(ctx, q.Title, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &GamePage{Games: games, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

// Update rewrites a catalog entry. Only admins may update games.
func (s *GameService) Update(ctx context.Context, principal *models.Principal, id string, in GameInput) (*models.Game, error) {

	if !principal.IsAdmin() {
		return nil, common.ErrorUnauthorized
	}
	if in.Title == "" {
		return nil, common.ErrBadRequest
	}

	repo := s.repomanager.Games(s.db)
	game, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	game.Title = in.Title
	game.ImageURL = models.NullString(in.ImageURL)
	game.Description = models.NullString(in.Description)

	updated, err := repo.Update(ctx, game)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return updated, nil
}

// Delete removes a catalog entry. Only admins may delete games.
func (s *GameService) Delete(ctx context.Context, principal *models.Principal, id string) error {

	if !principal.IsAdmin() {
		return common.ErrorUnauthorized
	}

	if err := s.repomanager.Games(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// AddToLibrary links a catalog game into the user's library. Adding a game
// twice yields common.ErrorConflict.
func (s *GameService) AddToLibrary(ctx context.Context, userID, gameID string) (*models.UserGame, error) {

	if _, err := s.repomanager.Games(s.db).GetByID(ctx, gameID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	entry, err := s.repomanager.UserGames(s.db).Add(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}
	return entry, nil
}

// ListLibrary returns the games in the user's library, newest first.
func (s *GameService) ListLibrary(ctx context.Context, userID string) ([]*models.Game, error) {
	games, err := s.repomanager.UserGames(s.db).ListGames(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return games, nil
}

// RemoveFromLibrary unlinks a game from the user's library.
func (s *GameService) RemoveFromLibrary(ctx context.Context, userID, gameID string) error {
	if err := s.repomanager.UserGames(s.db).Remove(ctx, userID, gameID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
