// Package reviews declares the review repository contract.
package reviews

import (
	"context"

	"github.com/acamacho/dulceria/internal/server/models"
)

type Repository interface {
	// Create inserts a review; a second review by the same user for the
	// same product yields common.ErrAlreadyExists.
	Create(ctx context.Context, review *models.Review) (*models.Review, error)

	FindByID(ctx context.Context, id int64) (*models.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Review, error)

	// Update persists rating and comment and bumps updated_at.
	Update(ctx context.Context, id int64, rating int, comment string) error

	Delete(ctx context.Context, id int64) error

	// AverageRating computes the mean rating of a product's reviews,
	// 0 when it has none.
	AverageRating(ctx context.Context, productID int64) (float64, error)
}
