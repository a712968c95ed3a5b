// Package services contains server-side business logic: the authentication
// flow (UserService) and the movie catalog (MovieService, MovieTypeService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
)

// bcrypt ignores input past this length, so longer passwords are refused.
const maxPasswordBytes = 72

// TokenIssuer is satisfied by *auth.Codec.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// UserService registers users, exchanges credentials for access tokens and
// changes passwords. It never returns password hashes to callers.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      auth.Hasher
	tokens                      TokenIssuer
	accessTokenValidityDuration time.Duration

	// dummyHash is verified against when the email is unknown so both
	// login failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, tokens TokenIssuer, accessTokenValidityDuration time.Duration) (*UserService, error) {
	dummy, err := hasher.Hash("movieapi-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		tokens:                      tokens,
		accessTokenValidityDuration: accessTokenValidityDuration,
		dummyHash:                   dummy,
	}, nil
}

// Register creates a credential for email. An already registered email is
// common.ErrDuplicateIdentity, whether caught by the lookup or by the
// unique constraint when two registrations race.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.PublicUser, error) {
	if email == "" || name == "" || password == "" {
		return nil, common.ErrMissingField
	}
	if len(password) > maxPasswordBytes {
		return nil, common.ErrPasswordTooLong
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateIdentity
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u.Public(), nil
}

// Login returns a signed access token for valid credentials. Unknown email
// and wrong password are the same common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

// ChangePassword replaces the hash after checking oldPassword. The lookup
// and update run in one transaction.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return common.ErrMissingField
	}
	if len(newPassword) > maxPasswordBytes {
		return common.ErrPasswordTooLong
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error looking up user: %w", err)
		}

		if !s.hasher.Verify(oldPassword, user.PasswordHash) {
			return common.ErrInvalidOldPassword
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		if err := repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		return nil
	})
}

func (s *UserService) GetUserInfo(ctx context.Context, userID int64) (*models.PublicUser, error) {
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return u.Public(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.PublicUser, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	result := make([]*models.PublicUser, 0, len(list))
	for _, u := range list {
		result = append(result, u.Public())
	}
	return result, nil
}
