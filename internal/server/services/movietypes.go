package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
)

type MovieTypeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMovieTypeService(db *sql.DB, m repomanager.RepositoryManager) *MovieTypeService {
	return &MovieTypeService{db: db, repomanager: m}
}

func (s *MovieTypeService) ListMovieTypes(ctx context.Context) ([]*models.MovieType, error) {
	list, err := s.repomanager.MovieTypes(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing movie types: %w", err)
	}
	return list, nil
}

func (s *MovieTypeService) GetMovieType(ctx context.Context, id int64) (*models.MovieType, error) {
	t, err := s.repomanager.MovieTypes(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "error reading movie type")
	}
	return t, nil
}

// CreateMovieType fails with common.ErrorAlreadyExists for a taken name.
func (s *MovieTypeService) CreateMovieType(ctx context.Context, name string) (*models.MovieType, error) {
	if name == "" {
		return nil, common.ErrMissingField
	}

	t, err := s.repomanager.MovieTypes(s.db).Create(ctx, &models.MovieType{Name: name})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating movie type: %w", err)
	}
	return t, nil
}

func (s *MovieTypeService) UpdateMovieType(ctx context.Context, id int64, name string) (*models.MovieType, error) {
	if name == "" {
		return nil, common.ErrMissingField
	}

	t, err := s.repomanager.MovieTypes(s.db).Update(ctx, &models.MovieType{ID: id, Name: name})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, notFoundOr(err, "error updating movie type")
	}
	return t, nil
}

// DeleteMovieType refuses with common.ErrorInUse while movies reference it.
func (s *MovieTypeService) DeleteMovieType(ctx context.Context, id int64) error {
	err := s.repomanager.MovieTypes(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorInUse) {
			return common.ErrorInUse
		}
		return notFoundOr(err, "error deleting movie type")
	}
	return nil
}
