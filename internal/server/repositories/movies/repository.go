package movies

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Repository stores movies. Reads embed the movie type. Writes referencing a
// missing type fail with common.ErrorInvalidReference.
type Repository interface {
	Create(ctx context.Context, m *models.Movie) (*models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	List(ctx context.Context) ([]*models.Movie, error)
	Update(ctx context.Context, m *models.Movie) (*models.Movie, error)
	SetPosterURL(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}
