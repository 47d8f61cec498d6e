package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
)

// ProductService manages the dessert catalog.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).FindByID(ctx, id)
}

// Search matches the query against name, description, and ingredients.
// A blank query returns the whole catalog.
func (s *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	return s.repomanager.Products(s.db).Search(ctx, query)
}

func (s *ProductService) validate(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", common.ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", common.ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	return s.repomanager.Products(s.db).Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *models.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repomanager.Products(s.db).Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}
