// Package products declares the catalog repository contract.
package products

import (
	"context"

	"github.com/acamacho/dulceria/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)

	// Search matches a case-insensitive substring against name,
	// description, and ingredients.
	Search(ctx context.Context, query string) ([]*models.Product, error)

	Update(ctx context.Context, p *models.Product) error

	// UpdateRating persists the recomputed average review rating.
	UpdateRating(ctx context.Context, id int64, rating float64) error

	Delete(ctx context.Context, id int64) error
}
