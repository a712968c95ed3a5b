package movielinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error) {
	query :=
		`INSERT INTO movie_links (movie_id, url, label)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, l.MovieID, l.URL, l.Label).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.MovieLink, error) {
	query :=
		`SELECT id, movie_id, url, COALESCE(label, ''), created_at, updated_at FROM movie_links
		 WHERE id = $1
		 `

	l := &models.MovieLink{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.MovieID, &l.URL, &l.Label, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *PostgresRepository) ListByMovie(ctx context.Context, movieID int64) ([]*models.MovieLink, error) {
	query :=
		`SELECT id, movie_id, url, COALESCE(label, ''), created_at, updated_at FROM movie_links
		 WHERE movie_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.MovieLink, 0)
	for rows.Next() {
		l := &models.MovieLink{}
		if err := rows.Scan(&l.ID, &l.MovieID, &l.URL, &l.Label, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error) {
	query :=
		`UPDATE movie_links SET url = $2, label = NULLIF($3, ''), updated_at = now()
		 WHERE id = $1
		 RETURNING movie_id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, l.ID, l.URL, l.Label).Scan(&l.MovieID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movie_links WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case dbx.IsForeignKeyViolation(err):
		return common.ErrorInvalidReference
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
