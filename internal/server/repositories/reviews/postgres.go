package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `v.id, v.user_id, v.product_id, v.rating, v.comment,
	v.created_at, v.updated_at, u.username`

func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		review.UserID, review.ProductID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return review, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews v JOIN users u ON u.id = v.user_id
		WHERE v.id = $1
	`
	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.UserID, &review.ProductID, &review.Rating,
		&review.Comment, &review.CreatedAt, &review.UpdatedAt, &review.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return review, nil
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID int64) ([]*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews v JOIN users u ON u.id = v.user_id
		WHERE v.product_id = $1
		ORDER BY v.created_at DESC
	`
	return r.queryMany(ctx, query, productID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews v JOIN users u ON u.id = v.user_id
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC
	`
	return r.queryMany(ctx, query, userID)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.UserID, &review.ProductID,
			&review.Rating, &review.Comment, &review.CreatedAt,
			&review.UpdatedAt, &review.Username); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, rating int, comment string) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, rating, comment)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) AverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1`,
		productID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return avg, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
