// Package services contains server-side business logic. This file implements
// TokenService: minting access/refresh token pairs, exchanging refresh tokens
// for fresh access tokens, and revoking refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/server/auth"
	"github.com/dmitrijs2005/stackr/internal/server/config"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues and verifies signed tokens and keeps the server-side
// refresh-token ledger. Only the SHA-256 hash of a refresh token is ever
// persisted; the plaintext is returned to the caller exactly once.
type TokenService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewTokenService constructs a TokenService using repositories and server config.
func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Issue mints an access/refresh token pair for the user and records the
// refresh token's hash and absolute expiry in the ledger.
func (s *TokenService) Issue(ctx context.Context, userID, email string) (*TokenPair, error) {

	accessToken, err := auth.GenerateToken(userID, email, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateToken(userID, email, auth.TokenKindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.RefreshTokens(s.db)
	expiresAt := time.Now().Add(s.refreshTokenValidityDuration)
	if err := repo.Create(ctx, userID, auth.HashToken(refreshToken), expiresAt); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is not rotated: it stays valid until its original
// expiry or until revoked. Every gate failure collapses into ErrInvalidToken.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {

	claims, err := auth.ParseToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	if claims.Kind != auth.TokenKindRefresh {
		return "", common.ErrInvalidToken
	}

	repo := s.repomanager.RefreshTokens(s.db)
	record, err := repo.FindByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", common.ErrorInternal
	}

	if record.RevokedAt != nil || record.ExpiresAt.Before(time.Now()) {
		return "", common.ErrInvalidToken
	}

	accessToken, err := auth.GenerateToken(claims.Subject, claims.Email, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// Revoke seals the ledger row for the given refresh token. Unknown and
// already-revoked tokens are a successful no-op: logout must succeed even
// on stale tokens.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {

	repo := s.repomanager.RefreshTokens(s.db)
	record, err := repo.FindByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}

	if record.RevokedAt != nil {
		return nil
	}

	if err := repo.Revoke(ctx, record.ID); err != nil {
		return common.ErrorInternal
	}
	return nil
}
