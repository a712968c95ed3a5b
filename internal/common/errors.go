// Package common defines shared constants and sentinel errors used across
// the movieapi server and its command-line client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrorInUse            = errors.New("referenced by other records")
	ErrorInvalidReference = errors.New("referenced record does not exist")

	// Service-level errors.
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrInvalidMovieType   = errors.New("invalid movie type")
	ErrInvalidReleaseDate = errors.New("invalid release date")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrStorageDisabled    = errors.New("object storage is not configured")

	// Access-control errors.
	ErrNoToken   = errors.New("no token provided")
	ErrForbidden = errors.New("failed to authenticate token")

	// Token verification errors.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenTampered  = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)
