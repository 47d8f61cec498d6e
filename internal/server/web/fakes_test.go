package web

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	sc "github.com/acamacho/dulceria/internal/server/config"
	"github.com/acamacho/dulceria/internal/server/models"
	productsrepo "github.com/acamacho/dulceria/internal/server/repositories/products"
	reviewsrepo "github.com/acamacho/dulceria/internal/server/repositories/reviews"
	rolesrepo "github.com/acamacho/dulceria/internal/server/repositories/roles"
	sessionsrepo "github.com/acamacho/dulceria/internal/server/repositories/sessions"
	usersrepo "github.com/acamacho/dulceria/internal/server/repositories/users"
	"github.com/acamacho/dulceria/internal/server/services"
)

type memUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func (f *memUsers) add(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	return f.add(u), nil
}

func (f *memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsers) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *memUsers) UpdateProfile(_ context.Context, id int64, email, phone, bio string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Email, u.Phone, u.Bio = email, phone, bio
	return nil
}

func (f *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = sql.NullString{String: hash, Valid: true}
	return nil
}

func (f *memUsers) UpdateRole(_ context.Context, id int64, roleID int64) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.RoleID = roleID
	return nil
}

func (f *memUsers) SetFederation(_ context.Context, id int64, provider, providerID string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Provider = sql.NullString{String: provider, Valid: true}
	u.ProviderID = sql.NullString{String: providerID, Valid: true}
	return nil
}

func (f *memUsers) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type memRoles struct{ roles map[string]*models.Role }

func (f *memRoles) FindByName(_ context.Context, name string) (*models.Role, error) {
	if r, ok := f.roles[name]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *memRoles) Create(_ context.Context, name string) (*models.Role, error) {
	r := &models.Role{ID: int64(len(f.roles) + 1), Name: name}
	f.roles[name] = r
	return r, nil
}

type memProducts struct {
	products map[int64]*models.Product
	nextID   int64
}

func (f *memProducts) add(p *models.Product) *models.Product {
	p.ID = f.nextID
	f.nextID++
	f.products[p.ID] = p
	return p
}

func (f *memProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	return f.add(p), nil
}

func (f *memProducts) FindByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *memProducts) FindByName(_ context.Context, name string) (*models.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memProducts) List(_ context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *memProducts) Search(_ context.Context, _ string) ([]*models.Product, error) {
	return f.List(context.Background())
}

func (f *memProducts) Update(_ context.Context, p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return common.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *memProducts) UpdateRating(_ context.Context, id int64, rating float64) error {
	p, ok := f.products[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Rating = rating
	return nil
}

func (f *memProducts) Delete(_ context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

type memReviews struct {
	reviews map[int64]*models.Review
	nextID  int64
}

func (f *memReviews) Create(_ context.Context, r *models.Review) (*models.Review, error) {
	for _, existing := range f.reviews {
		if existing.UserID == r.UserID && existing.ProductID == r.ProductID {
			return nil, common.ErrAlreadyExists
		}
	}
	r.ID = f.nextID
	f.nextID++
	f.reviews[r.ID] = r
	return r, nil
}

func (f *memReviews) FindByID(_ context.Context, id int64) (*models.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *memReviews) ListByProduct(_ context.Context, productID int64) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memReviews) ListByUser(_ context.Context, userID int64) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memReviews) Update(_ context.Context, id int64, rating int, comment string) error {
	r, ok := f.reviews[id]
	if !ok {
		return common.ErrNotFound
	}
	r.Rating, r.Comment = rating, comment
	return nil
}

func (f *memReviews) Delete(_ context.Context, id int64) error {
	delete(f.reviews, id)
	return nil
}

func (f *memReviews) AverageRating(_ context.Context, productID int64) (float64, error) {
	var sum, n int
	for _, r := range f.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type memSessions struct{ sessions map[string]*models.Session }

func (f *memSessions) Replace(_ context.Context, userID int64, token string, expires time.Time) error {
	for t, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, t)
		}
	}
	f.sessions[token] = &models.Session{Token: token, UserID: userID, Expires: expires}
	return nil
}

func (f *memSessions) Find(_ context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, common.ErrNotFound
}

func (f *memSessions) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeRepoManager struct {
	u *memUsers
	r *memRoles
	p *memProducts
	v *memReviews
	s *memSessions
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &memUsers{users: map[int64]*models.User{}, nextID: 1},
		r: &memRoles{roles: map[string]*models.Role{
			models.RoleAdmin: {ID: 1, Name: models.RoleAdmin},
			models.RoleUser:  {ID: 2, Name: models.RoleUser},
		}},
		p: &memProducts{products: map[int64]*models.Product{}, nextID: 1},
		v: &memReviews{reviews: map[int64]*models.Review{}, nextID: 1},
		s: &memSessions{sessions: map[string]*models.Session{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Roles(db dbx.DBTX) rolesrepo.Repository       { return m.r }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.p }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviewsrepo.Repository   { return m.v }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }

// newTestServer wires a Server over in-memory repositories. The sqlmock db
// only backs transaction begin/commit around session writes.
func newTestServer(t *testing.T) (*Server, *fakeRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rm := newFakeRepoManager()
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	usersSvc := services.NewUserService(db, rm, tokens, hasher)
	fedSvc := services.NewFederationService(db, rm, logger)
	productSvc := services.NewProductService(db, rm)
	reviewSvc := services.NewReviewService(db, rm)
	imageSvc := services.NewImageService(cfg)

	s := NewServer(cfg, logger, db, rm, tokens, usersSvc, fedSvc, productSvc, reviewSvc, imageSvc)
	return s, rm, mock
}

func seedWebAccount(t *testing.T, rm *fakeRepoManager, username, email, password, role string) *models.User {
	t.Helper()
	hash := sql.NullString{}
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}
		hash = sql.NullString{String: string(b), Valid: true}
	}
	return rm.u.add(&models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       rm.r.roles[role].ID,
		RoleName:     role,
	})
}
