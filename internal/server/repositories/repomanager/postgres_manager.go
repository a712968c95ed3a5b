// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/migrations"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movielinks"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movietypes"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Movies(db dbx.DBTX) movies.Repository {
	return movies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) MovieTypes(db dbx.DBTX) movietypes.Repository {
	return movietypes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) MovieLinks(db dbx.DBTX) movielinks.Repository {
	return movielinks.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

var (
	sqlOpen = sql.Open

	// pingBackoff bounds how long startup waits for the database.
	pingBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	}
)

// OpenDB opens a pgx-backed pool and waits until the database answers a
// ping, retrying with exponential backoff.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	err = retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return db, nil
}
