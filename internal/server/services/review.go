package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
)

// ReviewService manages product reviews. Every mutation recomputes the
// product's average rating inside the same transaction so the stored rating
// never drifts from the reviews.
type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager) *ReviewService {
	return &ReviewService{db: db, repomanager: m}
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", common.ErrValidation)
	}
	return nil
}

// Create adds a review. One review per user per product; a second attempt
// yields ErrAlreadyExists.
func (s *ReviewService) Create(ctx context.Context, userID, productID int64, rating int, comment string) (*models.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Products(s.db).FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Reviews(tx).Create(ctx, review)
		if err != nil {
			return err
		}
		review = created
		return s.recomputeRating(ctx, tx, productID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Update edits a review. Only the author may edit; admins may not edit on
// behalf of others, they can only delete.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID int64, rating int, comment string) error {
	if err := validRating(rating); err != nil {
		return err
	}

	review, err := s.repomanager.Reviews(s.db).FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return common.ErrForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Reviews(tx).Update(ctx, reviewID, rating, comment); err != nil {
			return err
		}
		return s.recomputeRating(ctx, tx, review.ProductID)
	})
}

// Delete removes a review. The author or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID int64, admin bool) error {
	review, err := s.repomanager.Reviews(s.db).FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID && !admin {
		return common.ErrForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Reviews(tx).Delete(ctx, reviewID); err != nil {
			return err
		}
		return s.recomputeRating(ctx, tx, review.ProductID)
	})
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]*models.Review, error) {
	return s.repomanager.Reviews(s.db).ListByProduct(ctx, productID)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]*models.Review, error) {
	return s.repomanager.Reviews(s.db).ListByUser(ctx, userID)
}

func (s *ReviewService) recomputeRating(ctx context.Context, tx dbx.DBTX, productID int64) error {
	avg, err := s.repomanager.Reviews(tx).AverageRating(ctx, productID)
	if err != nil {
		return err
	}
	err = s.repomanager.Products(tx).UpdateRating(ctx, productID, avg)
	if errors.Is(err, common.ErrNotFound) {
		// Product deleted concurrently; nothing left to keep consistent.
		return nil
	}
	return err
}
