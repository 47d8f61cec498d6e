// Package roles declares the role lookup contract consumed by the
// authentication subsystem and startup seeding.
package roles

import (
	"context"

	"github.com/acamacho/dulceria/internal/server/models"
)

type Repository interface {
	// FindByName returns the role with the given name, or common.ErrNotFound.
	FindByName(ctx context.Context, name string) (*models.Role, error)

	// Create inserts a new role; duplicate names yield common.ErrAlreadyExists.
	Create(ctx context.Context, name string) (*models.Role, error)
}
