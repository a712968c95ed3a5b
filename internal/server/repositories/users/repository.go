package users

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Repository is the credential store. Lookups return common.ErrorNotFound
// for absent users; Create returns common.ErrorAlreadyExists when the email
// is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	List(ctx context.Context) ([]*models.User, error)
}
