package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movielinks"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movietypes"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Movies(db dbx.DBTX) movies.Repository
	MovieTypes(db dbx.DBTX) movietypes.Repository
	MovieLinks(db dbx.DBTX) movielinks.Repository
}
