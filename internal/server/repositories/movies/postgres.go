package movies

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

const selectMovie = `SELECT m.id, m.title, COALESCE(m.description, ''), m.release_date, m.rating,
		 COALESCE(m.genre, ''), COALESCE(m.director, ''), m.duration,
		 COALESCE(m.language, ''), COALESCE(m.country, ''), COALESCE(m.poster_url, ''),
		 m.type_id, m.created_at, m.updated_at,
		 t.id, t.name, t.created_at, t.updated_at
		 FROM movies m
		 JOIN movie_types t ON t.id = m.type_id
		 `

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	m := &models.Movie{Type: &models.MovieType{}}
	err := s.Scan(
		&m.ID, &m.Title, &m.Description, &m.ReleaseDate, &m.Rating,
		&m.Genre, &m.Director, &m.Duration,
		&m.Language, &m.Country, &m.PosterURL,
		&m.TypeID, &m.CreatedAt, &m.UpdatedAt,
		&m.Type.ID, &m.Type.Name, &m.Type.CreatedAt, &m.Type.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	query :=
		`INSERT INTO movies (title, description, release_date, rating, genre, director,
		                     duration, language, country, poster_url, type_id)
		 VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''),
		         $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.Title, m.Description, m.ReleaseDate, m.Rating, m.Genre, m.Director,
		m.Duration, m.Language, m.Country, m.PosterURL, m.TypeID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, selectMovie+`WHERE m.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, selectMovie+`ORDER BY m.id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	query :=
		`UPDATE movies SET title = $2, description = NULLIF($3, ''), release_date = $4,
		 rating = $5, genre = NULLIF($6, ''), director = NULLIF($7, ''), duration = $8,
		 language = NULLIF($9, ''), country = NULLIF($10, ''), poster_url = NULLIF($11, ''),
		 type_id = $12, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.Title, m.Description, m.ReleaseDate, m.Rating, m.Genre, m.Director,
		m.Duration, m.Language, m.Country, m.PosterURL, m.TypeID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (r *PostgresRepository) SetPosterURL(ctx context.Context, id int64, url string) error {
	query :=
		`UPDATE movies SET poster_url = NULLIF($2, ''), updated_at = now()
		 WHERE id = $1
		 `

	return r.execOne(ctx, query, id, url)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, `DELETE FROM movies WHERE id = $1`, id)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
