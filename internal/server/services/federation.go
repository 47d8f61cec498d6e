package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
)

// ProviderIdentity is the external identity asserted by the federated
// provider after a completed authorization-code exchange.
type ProviderIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// FederationService reconciles identities asserted by an external provider
// against local accounts: find by email, or provision a fresh account.
type FederationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewFederationService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *FederationService {
	return &FederationService{db: db, repomanager: m, logger: logger}
}

// Reconcile maps a provider identity onto a local account, provisioning one
// when no account carries the asserted email. Provisioned accounts get the
// USER role and no local credential, so the password login path can never
// accept them. Two concurrent first logins race on the email unique
// constraint; the loser retries as a lookup and both converge on one account.
func (s *FederationService) Reconcile(ctx context.Context, identity ProviderIdentity) (*auth.Principal, *models.User, error) {
	if identity.Email == "" {
		return nil, nil, fmt.Errorf("%w: provider asserted no email", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if !user.Federated() {
			if err := repo.SetFederation(ctx, user.ID, identity.Provider, identity.Subject); err != nil {
				return nil, nil, common.ErrInternal
			}
			s.logger.Info(ctx, "linked provider to existing account",
				"username", user.Username, "provider", identity.Provider)
		}
	case errors.Is(err, common.ErrNotFound):
		user, err = s.provision(ctx, identity)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, common.ErrInternal
	}

	return auth.NewPrincipal(user.Username, user.RoleName), user, nil
}

func (s *FederationService) provision(ctx context.Context, identity ProviderIdentity) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	role, err := s.repomanager.Roles(s.db).FindByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrRoleMissing
		}
		return nil, common.ErrInternal
	}

	username, err := s.freeUsername(ctx, usernameBase(identity.Email))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:   username,
		Email:      identity.Email,
		Bio:        "Registered with " + identity.Provider,
		RoleID:     role.ID,
		RoleName:   role.Name,
		Provider:   sql.NullString{String: identity.Provider, Valid: true},
		ProviderID: sql.NullString{String: identity.Subject, Valid: true},
	}

	created, err := repo.Create(ctx, user)
	if err == nil {
		created.RoleName = role.Name
		s.logger.Info(ctx, "provisioned federated account",
			"username", created.Username, "provider", identity.Provider)
		return created, nil
	}
	if !errors.Is(err, common.ErrAlreadyExists) {
		return nil, common.ErrInternal
	}

	// Lost the race against a concurrent first login: the row exists now,
	// so re-read it instead of failing the login.
	existing, err := repo.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, common.ErrInternal
	}
	return existing, nil
}

// usernameBase derives the candidate username from the email local part.
func usernameBase(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// freeUsername returns base if unclaimed, otherwise the first base<n> with
// n counting up from 1 that no account holds.
func (s *FederationService) freeUsername(ctx context.Context, base string) (string, error) {
	repo := s.repomanager.Users(s.db)

	candidate := base
	for n := 1; ; n++ {
		_, err := repo.FindByUsername(ctx, candidate)
		if errors.Is(err, common.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", common.ErrInternal
		}
		candidate = fmt.Sprintf("%s%d", base, n)
	}
}
