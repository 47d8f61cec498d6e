package repomanager

import (
	"context"
	"database/sql"

	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/server/repositories/products"
	"github.com/acamacho/dulceria/internal/server/repositories/reviews"
	"github.com/acamacho/dulceria/internal/server/repositories/roles"
	"github.com/acamacho/dulceria/internal/server/repositories/sessions"
	"github.com/acamacho/dulceria/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Products(db dbx.DBTX) products.Repository
	Reviews(db dbx.DBTX) reviews.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
