// Package services contains server-side business logic. This file implements
// UserService: password authentication, bearer token issuance, registration,
// and account management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/server/auth"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
)

// TokenResponse is the successful login payload: a signed bearer token plus
// the identity it was minted for. Roles is the comma-joined authority list,
// mirroring the token's roles claim.
type TokenResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Username string `json:"username"`
	Roles    string `json:"roles"`
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// UserService handles credential verification and account lifecycle.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager,
	tokens *auth.TokenService, hasher *auth.PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens, hasher: hasher}
}

// Authenticate verifies a login (username, or email as fallback) against the
// stored bcrypt hash. Unknown accounts, wrong passwords, and federation-only
// accounts without a local credential all come back as ErrBadCredentials;
// the unknown-account path still burns a full-cost hash comparison so the
// failure modes are indistinguishable by timing.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByUsername(ctx, login)
	if errors.Is(err, common.ErrNotFound) {
		user, err = repo.FindByEmail(ctx, login)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrBadCredentials
		}
		return nil, common.ErrInternal
	}

	if err := s.hasher.Verify(user.PasswordHash.String, password); err != nil {
		return nil, common.ErrBadCredentials
	}
	return user, nil
}

// Login authenticates and, on success, mints a bearer token for the account's
// granted authority.
func (s *UserService) Login(ctx context.Context, login, password string) (*TokenResponse, error) {
	user, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	principal := auth.NewPrincipal(user.Username, user.RoleName)
	token, err := s.tokens.Issue(principal.Username, principal.Authorities)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TokenResponse{
		Token:    token,
		Type:     "Bearer",
		Username: principal.Username,
		Roles:    auth.JoinAuthorities(principal.Authorities),
	}, nil
}

// RegisterRequest carries a self-service signup.
type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Bio             string
}

// Register creates a local account with the USER role.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrValidation)
	}

	role, err := s.repomanager.Roles(s.db).FindByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrRoleMissing
		}
		return nil, common.ErrInternal
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Phone:        req.Phone,
		Bio:          req.Bio,
		RoleID:       role.ID,
		RoleName:     role.Name,
	}
	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, common.ErrInternal
	}
	created.RoleName = role.Name
	return created, nil
}

// Profile loads the account for the given username.
func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByUsername(ctx, username)
}

// UpdateProfile changes the contact fields of an account. The email must
// stay unique across accounts.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, email, phone, bio string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	if digits := strings.Map(keepDigit, phone); len(digits) < 10 {
		return fmt.Errorf("%w: phone must have at least 10 digits", common.ErrValidation)
	}
	if len(bio) > 500 {
		return fmt.Errorf("%w: bio must be at most 500 characters", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)
	if other, err := repo.FindByEmail(ctx, email); err == nil && other.ID != id {
		return fmt.Errorf("%w: email already in use", common.ErrAlreadyExists)
	} else if err != nil && !errors.Is(err, common.ErrNotFound) {
		return common.ErrInternal
	}

	return repo.UpdateProfile(ctx, id, email, phone, bio)
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}

// ChangePassword replaces the local credential after verifying the current
// one. Federation-only accounts have no current credential and cannot pass.
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, updated, confirm string) error {
	if len(updated) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	if updated != confirm {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(user.PasswordHash.String, current); err != nil {
		return common.ErrBadCredentials
	}

	hash, err := s.hasher.Hash(updated)
	if err != nil {
		return common.ErrInternal
	}
	return repo.UpdatePassword(ctx, id, hash)
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// Get returns the account with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, id)
}

// UpdateRole reassigns an account to the named role.
func (s *UserService) UpdateRole(ctx context.Context, id int64, roleName string) error {
	role, err := s.repomanager.Roles(s.db).FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: unknown role %s", common.ErrValidation, roleName)
		}
		return common.ErrInternal
	}
	return s.repomanager.Users(s.db).UpdateRole(ctx, id, role.ID)
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
