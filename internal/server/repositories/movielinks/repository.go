package movielinks

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Repository stores links attached to movies. Creating a link for a missing
// movie fails with common.ErrorInvalidReference.
type Repository interface {
	Create(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error)
	GetByID(ctx context.Context, id int64) (*models.MovieLink, error)
	ListByMovie(ctx context.Context, movieID int64) ([]*models.MovieLink, error)
	Update(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error)
	Delete(ctx context.Context, id int64) error
}
