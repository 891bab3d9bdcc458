package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/dbx"
	"github.com/dmitrijs2005/stackr/internal/logging"
	"github.com/dmitrijs2005/stackr/internal/server/auth"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/repositories/repomanager"
)

// AccountService reconciles provider credential bindings: it links password
// accounts, verifies passwords, and maps federated identities onto a single
// durable user.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "accounts"),
	}
}

// LinkPassword binds a password credential to userID. The db handle is taken
// as a parameter so the caller can run the link inside its own transaction.
// A second password binding for the same user yields common.ErrorConflict,
// whether detected by the pre-check or by the unique constraint.
func (s *AccountService) LinkPassword(ctx context.Context, db dbx.DBTX, userID, passwordHash string) (*models.AuthAccount, error) {

	repo := s.repomanager.AuthAccounts(db)

	if _, err := repo.FindByProvider(ctx, userID, models.ProviderPassword); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	account, err := repo.Create(ctx, &models.AuthAccount{
		UserID:       userID,
		ProviderType: models.ProviderPassword,
		PasswordHash: models.NullString(passwordHash),
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// FindOrCreateFederated maps a federated identity onto a durable user,
// creating the user and/or the provider binding as needed. Repeated calls
// with the same (email, externalId) converge to the same single user and
// single binding; a concurrent duplicate insert is absorbed by re-reading
// the winning row. Federated emails are presumed pre-verified.
func (s *AccountService) FindOrCreateFederated(ctx context.Context, provider models.ProviderType, identity models.FederatedIdentity) (*models.User, bool, error) {

	userRepo := s.repomanager.Users(s.db)
	created := false

	user, err := userRepo.GetByEmail(ctx, identity.Email)
	if errors.Is(err, common.ErrorNotFound) {
		user, err = userRepo.Create(ctx, &models.User{
			Email:         identity.Email,
			EmailVerified: true,
			IsActive:      true,
			Role:          models.RoleUser,
		})
		if err == nil {
			created = true
		} else if errors.Is(err, common.ErrorConflict) {
			// lost a concurrent create; the other request's row wins
			user, err = userRepo.GetByEmail(ctx, identity.Email)
		}
	}
	if err != nil {
		return nil, false, common.ErrorInternal
	}

	accountRepo := s.repomanager.AuthAccounts(s.db)
	account, err := accountRepo.FindByProvider(ctx, user.ID, provider)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		_, err = accountRepo.Create(ctx, &models.AuthAccount{
			UserID:         user.ID,
			ProviderType:   provider,
			ProviderUserID: models.NullString(identity.ExternalID),
		})
		if err != nil && !errors.Is(err, common.ErrorConflict) {
			return nil, false, common.ErrorInternal
		}
	case err != nil:
		return nil, false, common.ErrorInternal
	case account.ProviderUserID.String != identity.ExternalID:
		// the provider rotated its external identifier
		if err := accountRepo.UpdateProviderUserID(ctx, account.ID, identity.ExternalID); err != nil {
			return nil, false, common.ErrorInternal
		}
	}

	return user, created, nil
}

// VerifyPassword checks plaintext against the stored password binding for
// userID. Missing binding, mismatch and unparsable stored digest all yield
// the same common.ErrorUnauthorized; the corrupt-digest case is additionally
// logged as an internal fault.
func (s *AccountService) VerifyPassword(ctx context.Context, userID, plaintext string) error {

	repo := s.repomanager.AuthAccounts(s.db)
	account, err := repo.FindByProvider(ctx, userID, models.ProviderPassword)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	if !account.PasswordHash.Valid {
		return common.ErrorUnauthorized
	}

	ok, err := auth.VerifyPassword(plaintext, account.PasswordHash.String)
	if err != nil {
		s.logger.Error(ctx, "stored password digest is unparsable", "user_id", userID)
		return common.ErrorUnauthorized
	}
	if !ok {
		return common.ErrorUnauthorized
	}

	return nil
}
