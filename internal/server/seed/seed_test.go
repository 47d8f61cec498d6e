package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	"github.com/acamacho/dulceria/internal/server/models"
)

type fakeRoleRepo struct {
	byName map[string]*models.Role
	nextID int64
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{byName: map[string]*models.Role{}, nextID: 1}
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*models.Role, error) {
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRoleRepo) Create(_ context.Context, name string) (*models.Role, error) {
	if _, ok := f.byName[name]; ok {
		return nil, common.ErrAlreadyExists
	}
	r := &models.Role{ID: f.nextID, Name: name}
	f.nextID++
	f.byName[name] = r
	return r, nil
}

type fakeUserRepo struct {
	byUsername map[string]*models.User
	nextID     int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byUsername[u.Username]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = f.nextID
	f.nextID++
	f.byUsername[u.Username] = u
	return u, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateProfile(_ context.Context, _ int64, _, _, _ string) error { return nil }

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _ int64, _ string) error { return nil }

func (f *fakeUserRepo) UpdateRole(_ context.Context, _ int64, _ int64) error { return nil }

func (f *fakeUserRepo) SetFederation(_ context.Context, _ int64, _, _ string) error { return nil }

func (f *fakeUserRepo) Delete(_ context.Context, _ int64) error { return nil }

type fakeProductRepo struct {
	byName map[string]*models.Product
	nextID int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byName: map[string]*models.Product{}, nextID: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := f.byName[p.Name]; ok {
		return nil, common.ErrAlreadyExists
	}
	p.ID = f.nextID
	f.nextID++
	f.byName[p.Name] = p
	return p, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	for _, p := range f.byName {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProductRepo) FindByName(_ context.Context, name string) (*models.Product, error) {
	if p, ok := f.byName[name]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context) ([]*models.Product, error) { return nil, nil }

func (f *fakeProductRepo) Search(_ context.Context, _ string) ([]*models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, _ *models.Product) error { return nil }

func (f *fakeProductRepo) UpdateRating(_ context.Context, _ int64, _ float64) error { return nil }

func (f *fakeProductRepo) Delete(_ context.Context, _ int64) error { return nil }

func newTestSeeder() (*Seeder, *fakeRoleRepo, *fakeUserRepo, *fakeProductRepo) {
	roleRepo := newFakeRoleRepo()
	userRepo := newFakeUserRepo()
	productRepo := newFakeProductRepo()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewSeeder(roleRepo, userRepo, productRepo,
		auth.NewPasswordHasher(bcrypt.MinCost), logger)
	return s, roleRepo, userRepo, productRepo
}

func TestRun_PopulatesEmptyDatabase(t *testing.T) {
	s, roleRepo, userRepo, productRepo := newTestSeeder()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		if _, ok := roleRepo.byName[role]; !ok {
			t.Errorf("role %s not seeded", role)
		}
	}

	admin, ok := userRepo.byUsername["admin"]
	if !ok {
		t.Fatal("admin account not seeded")
	}
	if admin.RoleID != roleRepo.byName[models.RoleAdmin].ID {
		t.Errorf("admin has role id %d", admin.RoleID)
	}
	if !admin.PasswordHash.Valid || admin.PasswordHash.String == "admin123" {
		t.Error("admin password not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash.String), []byte("admin123")); err != nil {
		t.Errorf("admin hash does not verify: %v", err)
	}
	if admin.Phone != "3001234567" {
		t.Errorf("unexpected admin phone %q", admin.Phone)
	}

	if _, ok := userRepo.byUsername["user"]; !ok {
		t.Fatal("user account not seeded")
	}

	if len(productRepo.byName) != len(catalogSeed) {
		t.Errorf("seeded %d products, want %d", len(productRepo.byName), len(catalogSeed))
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	s, roleRepo, userRepo, productRepo := newTestSeeder()

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	adminID := userRepo.byUsername["admin"].ID

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if userRepo.byUsername["admin"].ID != adminID {
		t.Error("admin account recreated")
	}
	if len(roleRepo.byName) != 2 {
		t.Errorf("expected 2 roles, got %d", len(roleRepo.byName))
	}
	if len(productRepo.byName) != len(catalogSeed) {
		t.Errorf("expected %d products, got %d", len(catalogSeed), len(productRepo.byName))
	}
}
