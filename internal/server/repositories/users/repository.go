// Package users declares the credential store adapter: the repository
// contract through which accounts are loaded and mutated.
package users

import (
	"context"

	"github.com/acamacho/dulceria/internal/server/models"
)

// Repository defines the persistence operations on accounts. Lookups return
// common.ErrNotFound for absent rows; Create maps unique-constraint
// violations (username, email) to common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// UpdateProfile persists email, phone, and bio.
	UpdateProfile(ctx context.Context, id int64, email, phone, bio string) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// UpdateRole reassigns the account's role.
	UpdateRole(ctx context.Context, id int64, roleID int64) error

	// SetFederation links provider metadata onto an existing account.
	SetFederation(ctx context.Context, id int64, provider, providerID string) error

	Delete(ctx context.Context, id int64) error
}
