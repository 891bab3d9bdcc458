// Package authaccounts declares the repository contract for provider
// credential bindings (one row per user/provider pair).
package authaccounts

import (
	"context"

	"github.com/dmitrijs2005/stackr/internal/server/models"
)

// Repository defines operations over auth_accounts rows. Uniqueness of
// (user_id, provider_type) is enforced by the database; a losing concurrent
// insert surfaces as common.ErrorConflict.
type Repository interface {
	// Create inserts a new provider binding and returns it with the
	// generated id and timestamps filled in.
	Create(ctx context.Context, account *models.AuthAccount) (*models.AuthAccount, error)

	// FindByProvider returns the binding for (userID, provider),
	// or common.ErrorNotFound.
	FindByProvider(ctx context.Context, userID string, provider models.ProviderType) (*models.AuthAccount, error)

	// UpdateProviderUserID replaces the federated external id on an existing
	// binding (providers occasionally rotate their identifiers).
	UpdateProviderUserID(ctx context.Context, id string, providerUserID string) error
}
