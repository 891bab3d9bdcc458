package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/logging"
	"github.com/dmitrijs2005/stackr/internal/server/auth"
	"github.com/dmitrijs2005/stackr/internal/server/config"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
)

// PublicUser is the subset of user fields returned to callers.
type PublicUser struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	EmailVerified bool        `json:"emailVerified"`
	IsActive      bool        `json:"isActive"`
	Role          models.Role `json:"role"`
}

// AuthResult is the outcome of a successful register/login/federated login.
type AuthResult struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         PublicUser `json:"user"`
}

// AuthService orchestrates registration, login, federated login, token
// refresh, logout and access-token authentication. It is the translation
// boundary: no raw storage or crypto error leaves this service.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    *AccountService
	tokens      *TokenService
	profiles    *ProfileService
	jwtSecret   []byte
	logger      logging.Logger
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, accounts *AccountService,
	tokens *TokenService, profiles *ProfileService, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		accounts:    accounts,
		tokens:      tokens,
		profiles:    profiles,
		jwtSecret:   []byte(cfg.SecretKey),
		logger:      logger.With("module", "auth"),
	}
}

func publicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		Role:          u.Role,
	}
}

// Register creates a user with a password credential and issues tokens.
// A duplicate email yields common.ErrorConflict whether caught by the
// pre-check or by the unique constraint under a concurrent register.
// User, password binding and the empty profile row are created as one
// transaction, so a failed later step never leaves a credential-less user.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {

	userRepo := s.repomanager.Users(s.db)
	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		user, txErr = s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:    email,
			IsActive: true,
			Role:     models.RoleUser,
		})
		if txErr != nil {
			return txErr
		}
		if _, txErr = s.accounts.LinkPassword(ctx, tx, user.ID, passwordHash); txErr != nil {
			return txErr
		}
		_, txErr = s.repomanager.Profiles(tx).Create(ctx, &models.UserProfile{UserID: user.ID})
		return txErr
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}

	pair, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: publicUser(user)}, nil
}

// Login verifies a password credential and issues tokens. Unknown email,
// inactive account, missing password binding and wrong password all fail
// with the identical common.ErrorUnauthorized so the response never leaks
// which factor was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	if err := s.accounts.VerifyPassword(ctx, user.ID, password); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: publicUser(user)}, nil
}

// GoogleLogin reconciles a federated identity onto a durable user and issues
// tokens. Well-formed input never conflicts: reconciliation absorbs both new
// and returning identities. Profile hints from the provider are applied on a
// best-effort basis and never fail the login.
func (s *AuthService) GoogleLogin(ctx context.Context, identity models.FederatedIdentity) (*AuthResult, error) {

	if identity.Email == "" {
		return nil, common.ErrBadRequest
	}

	user, created, err := s.accounts.FindOrCreateFederated(ctx, models.ProviderGoogle, identity)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info(ctx, "user created via federated login", "user_id", user.ID)
	}

	if err := s.profiles.ApplyFederatedHints(ctx, user.ID, identity); err != nil {
		s.logger.Warn(ctx, "could not apply federated profile hints", "user_id", user.ID, "error", err.Error())
	}

	pair, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: publicUser(user)}, nil
}

// RefreshToken exchanges a refresh token for a fresh access token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

// Logout revokes a refresh token. It is idempotent and succeeds on unknown
// or already-revoked tokens.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

// Authenticate verifies an access token and resolves it to a Principal.
// A token of the wrong kind, for a deleted user or for a deactivated user
// is rejected the same way as a forged one.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.Principal, error) {

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if claims.Kind != auth.TokenKindAccess {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrInvalidToken
	}

	return &models.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}
