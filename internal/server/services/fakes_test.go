package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/server/models"
	productsrepo "github.com/acamacho/dulceria/internal/server/repositories/products"
	reviewsrepo "github.com/acamacho/dulceria/internal/server/repositories/reviews"
	rolesrepo "github.com/acamacho/dulceria/internal/server/repositories/roles"
	sessionsrepo "github.com/acamacho/dulceria/internal/server/repositories/sessions"
	usersrepo "github.com/acamacho/dulceria/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory fakes ---

type memUsersRepo struct {
	users  map[int64]*models.User
	nextID int64

	// createHook runs before Create and may return an error to simulate a
	// lost provisioning race.
	createHook func() error
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *memUsersRepo) add(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *memUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createHook != nil {
		if err := f.createHook(); err != nil {
			return nil, err
		}
	}
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	return f.add(u), nil
}

func (f *memUsersRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *memUsersRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsersRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *memUsersRepo) UpdateProfile(_ context.Context, id int64, email, phone, bio string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Email, u.Phone, u.Bio = email, phone, bio
	return nil
}

func (f *memUsersRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = sql.NullString{String: hash, Valid: true}
	return nil
}

func (f *memUsersRepo) UpdateRole(_ context.Context, id int64, roleID int64) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.RoleID = roleID
	return nil
}

func (f *memUsersRepo) SetFederation(_ context.Context, id int64, provider, providerID string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Provider = sql.NullString{String: provider, Valid: true}
	u.ProviderID = sql.NullString{String: providerID, Valid: true}
	return nil
}

func (f *memUsersRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type memRolesRepo struct {
	roles map[string]*models.Role
}

func newMemRolesRepo() *memRolesRepo {
	return &memRolesRepo{roles: map[string]*models.Role{
		models.RoleAdmin: {ID: 1, Name: models.RoleAdmin},
		models.RoleUser:  {ID: 2, Name: models.RoleUser},
	}}
}

func (f *memRolesRepo) FindByName(_ context.Context, name string) (*models.Role, error) {
	if r, ok := f.roles[name]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *memRolesRepo) Create(_ context.Context, name string) (*models.Role, error) {
	if _, ok := f.roles[name]; ok {
		return nil, common.ErrAlreadyExists
	}
	r := &models.Role{ID: int64(len(f.roles) + 1), Name: name}
	f.roles[name] = r
	return r, nil
}

type memProductsRepo struct {
	products map[int64]*models.Product
	nextID   int64
}

func newMemProductsRepo() *memProductsRepo {
	return &memProductsRepo{products: map[int64]*models.Product{}, nextID: 1}
}

func (f *memProductsRepo) add(p *models.Product) *models.Product {
	p.ID = f.nextID
	f.nextID++
	f.products[p.ID] = p
	return p
}

func (f *memProductsRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	for _, existing := range f.products {
		if existing.Name == p.Name {
			return nil, common.ErrAlreadyExists
		}
	}
	return f.add(p), nil
}

func (f *memProductsRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *memProductsRepo) FindByName(_ context.Context, name string) (*models.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memProductsRepo) List(_ context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *memProductsRepo) Search(_ context.Context, _ string) ([]*models.Product, error) {
	return f.List(context.Background())
}

func (f *memProductsRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return common.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *memProductsRepo) UpdateRating(_ context.Context, id int64, rating float64) error {
	p, ok := f.products[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Rating = rating
	return nil
}

func (f *memProductsRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type memReviewsRepo struct {
	reviews map[int64]*models.Review
	nextID  int64
}

func newMemReviewsRepo() *memReviewsRepo {
	return &memReviewsRepo{reviews: map[int64]*models.Review{}, nextID: 1}
}

func (f *memReviewsRepo) Create(_ context.Context, r *models.Review) (*models.Review, error) {
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

func (f *memReviewsRepo) FindByID(_ context.Context, id int64) (*models.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *memReviewsRepo) ListByProduct(_ context.Context, productID int64) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memReviewsRepo) ListByUser(_ context.Context, userID int64) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memReviewsRepo) Update(_ context.Context, id int64, rating int, comment string) error {
	r, ok := f.reviews[id]
	if !ok {
		return common.ErrNotFound
	}
	r.Rating, r.Comment = rating, comment
	return nil
}

func (f *memReviewsRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *memReviewsRepo) AverageRating(_ context.Context, productID int64) (float64, error) {
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

type fakeRepoManager struct {
	u *memUsersRepo
	r *memRolesRepo
	p *memProductsRepo
	v *memReviewsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newMemUsersRepo(),
		r: newMemRolesRepo(),
		p: newMemProductsRepo(),
		v: newMemReviewsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository            { return m.u }
func (m *fakeRepoManager) Roles(db dbx.DBTX) rolesrepo.Repository            { return m.r }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository      { return m.p }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviewsrepo.Repository        { return m.v }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository      { return nil }
