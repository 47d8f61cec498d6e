// Package seed populates a fresh database with the base roles, the two
// bootstrap accounts, and the initial catalog. Every step is idempotent:
// rows that already exist are left alone, so the seeder runs on every start.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/products"
	"github.com/acamacho/dulceria/internal/server/repositories/roles"
	"github.com/acamacho/dulceria/internal/server/repositories/users"
)

type Seeder struct {
	roles    roles.Repository
	users    users.Repository
	products products.Repository
	hasher   *auth.PasswordHasher
	logger   logging.Logger
}

func NewSeeder(roleRepo roles.Repository, userRepo users.Repository,
	productRepo products.Repository, hasher *auth.PasswordHasher, logger logging.Logger) *Seeder {
	return &Seeder{
		roles:    roleRepo,
		users:    userRepo,
		products: productRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// Run seeds roles, bootstrap accounts, and the catalog, in that order.
// Accounts need the roles to exist first.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureRoles(ctx); err != nil {
		return err
	}
	if err := s.ensureUsers(ctx); err != nil {
		return err
	}
	return s.ensureProducts(ctx)
}

func (s *Seeder) ensureRoles(ctx context.Context) error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		_, err := s.roles.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if _, err := s.roles.Create(ctx, name); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
		s.logger.Info(ctx, "role created", "role", name)
	}
	return nil
}

type seedUser struct {
	username string
	password string
	email    string
	phone    string
	bio      string
	role     string
}

func (s *Seeder) ensureUsers(ctx context.Context) error {
	seeds := []seedUser{
		{
			username: "admin",
			password: "admin123",
			email:    "admin@example.com",
			phone:    "3001234567",
			bio:      "Usuario administrador del sistema",
			role:     models.RoleAdmin,
		},
		{
			username: "user",
			password: "user123",
			email:    "user@example.com",
			phone:    "3009876543",
			bio:      "Usuario regular del sistema",
			role:     models.RoleUser,
		},
	}

	for _, seed := range seeds {
		_, err := s.users.FindByUsername(ctx, seed.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		role, err := s.roles.FindByName(ctx, seed.role)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("seeding %s: %w", seed.username, common.ErrRoleMissing)
			}
			return err
		}

		hash, err := s.hasher.Hash(seed.password)
		if err != nil {
			return err
		}

		user := &models.User{
			Username:     seed.username,
			Email:        seed.email,
			PasswordHash: sql.NullString{String: hash, Valid: true},
			Phone:        seed.phone,
			Bio:          seed.bio,
			RoleID:       role.ID,
		}
		if _, err := s.users.Create(ctx, user); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
		s.logger.Info(ctx, "account created", "username", seed.username, "role", seed.role)
	}
	return nil
}

func (s *Seeder) ensureProducts(ctx context.Context) error {
	for _, p := range catalogSeed {
		_, err := s.products.FindByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		seed := p
		if _, err := s.products.Create(ctx, &seed); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
		s.logger.Info(ctx, "product created", "name", p.Name)
	}
	return nil
}
