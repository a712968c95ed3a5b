package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
)

// MovieInput carries the writable fields of a movie. ReleaseDate is
// YYYY-MM-DD or RFC 3339.
type MovieInput struct {
	Title       string
	Description string
	ReleaseDate string
	Rating      *float64
	Genre       string
	Director    string
	Duration    *int32
	Language    string
	Country     string
	PosterURL   string
	TypeID      int64
}

// MovieService manages movies, their links and poster uploads.
type MovieService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	posters     PosterStorage
	posterTTL   time.Duration
}

// NewMovieService wires the service. posters may be nil, in which case
// poster uploads fail with common.ErrStorageDisabled.
func NewMovieService(db *sql.DB, m repomanager.RepositoryManager, posters PosterStorage, posterTTL time.Duration) *MovieService {
	return &MovieService{
		db:          db,
		repomanager: m,
		posters:     posters,
		posterTTL:   posterTTL,
	}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	list, err := s.repomanager.Movies(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing movies: %w", err)
	}
	return list, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.repomanager.Movies(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "error reading movie")
	}
	return m, nil
}

// CreateMovie requires a title, a release date and an existing type.
func (s *MovieService) CreateMovie(ctx context.Context, in MovieInput) (*models.Movie, error) {
	m, err := in.toModel()
	if err != nil {
		return nil, err
	}

	var created *models.Movie
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkMovieType(ctx, tx, m.TypeID); err != nil {
			return err
		}

		repo := s.repomanager.Movies(tx)
		if _, err := repo.Create(ctx, m); err != nil {
			if errors.Is(err, common.ErrorInvalidReference) {
				return common.ErrInvalidMovieType
			}
			return fmt.Errorf("error creating movie: %w", err)
		}

		created, err = repo.GetByID(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("error reading movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMovie replaces every writable field of movie id.
func (s *MovieService) UpdateMovie(ctx context.Context, id int64, in MovieInput) (*models.Movie, error) {
	m, err := in.toModel()
	if err != nil {
		return nil, err
	}
	m.ID = id

	var updated *models.Movie
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkMovieType(ctx, tx, m.TypeID); err != nil {
			return err
		}

		repo := s.repomanager.Movies(tx)
		if _, err := repo.Update(ctx, m); err != nil {
			if errors.Is(err, common.ErrorInvalidReference) {
				return common.ErrInvalidMovieType
			}
			return notFoundOr(err, "error updating movie")
		}

		updated, err = repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error reading movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.repomanager.Movies(s.db).Delete(ctx, id); err != nil {
		return notFoundOr(err, "error deleting movie")
	}
	return nil
}

func (s *MovieService) checkMovieType(ctx context.Context, tx dbx.DBTX, typeID int64) error {
	if _, err := s.repomanager.MovieTypes(tx).GetByID(ctx, typeID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidMovieType
		}
		return fmt.Errorf("error reading movie type: %w", err)
	}
	return nil
}

// ListMovieLinks returns the links of an existing movie.
func (s *MovieService) ListMovieLinks(ctx context.Context, movieID int64) ([]*models.MovieLink, error) {
	if _, err := s.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.MovieLinks(s.db).ListByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("error listing movie links: %w", err)
	}
	return list, nil
}

func (s *MovieService) CreateMovieLink(ctx context.Context, movieID int64, url, label string) (*models.MovieLink, error) {
	if url == "" {
		return nil, common.ErrMissingField
	}

	l, err := s.repomanager.MovieLinks(s.db).Create(ctx, &models.MovieLink{MovieID: movieID, URL: url, Label: label})
	if err != nil {
		if errors.Is(err, common.ErrorInvalidReference) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error creating movie link: %w", err)
	}
	return l, nil
}

func (s *MovieService) UpdateMovieLink(ctx context.Context, id int64, url, label string) (*models.MovieLink, error) {
	if url == "" {
		return nil, common.ErrMissingField
	}

	l, err := s.repomanager.MovieLinks(s.db).Update(ctx, &models.MovieLink{ID: id, URL: url, Label: label})
	if err != nil {
		return nil, notFoundOr(err, "error updating movie link")
	}
	return l, nil
}

func (s *MovieService) DeleteMovieLink(ctx context.Context, id int64) error {
	if err := s.repomanager.MovieLinks(s.db).Delete(ctx, id); err != nil {
		return notFoundOr(err, "error deleting movie link")
	}
	return nil
}

func (in MovieInput) toModel() (*models.Movie, error) {
	if in.Title == "" || in.ReleaseDate == "" || in.TypeID == 0 {
		return nil, common.ErrMissingField
	}

	released, err := parseReleaseDate(in.ReleaseDate)
	if err != nil {
		return nil, err
	}

	return &models.Movie{
		Title:       in.Title,
		Description: in.Description,
		ReleaseDate: released,
		Rating:      in.Rating,
		Genre:       in.Genre,
		Director:    in.Director,
		Duration:    in.Duration,
		Language:    in.Language,
		Country:     in.Country,
		PosterURL:   in.PosterURL,
		TypeID:      in.TypeID,
	}, nil
}

func parseReleaseDate(v string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, common.ErrInvalidReleaseDate
}

// notFoundOr passes common.ErrorNotFound through and wraps anything else.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
