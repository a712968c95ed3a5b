package movietypes

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Repository stores movie types. Names are unique (common.ErrorAlreadyExists);
// a type referenced by movies cannot be deleted (common.ErrorInUse).
type Repository interface {
	Create(ctx context.Context, t *models.MovieType) (*models.MovieType, error)
	GetByID(ctx context.Context, id int64) (*models.MovieType, error)
	List(ctx context.Context) ([]*models.MovieType, error)
	Update(ctx context.Context, t *models.MovieType) (*models.MovieType, error)
	Delete(ctx context.Context, id int64) error
}
