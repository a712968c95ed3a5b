// Package auth implements password hashing, signed session tokens and the
// bearer-token gate protecting write endpoints.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an access token: sub, iat, exp and jti.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 tokens with a single process-wide secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

type CodecOption func(*Codec)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

var errEmptySecret = errors.New("token secret must not be empty")

func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Issue signs a token for subject valid on [now, now+ttl).
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})

	return token.SignedString(c.secret)
}

// segmentEncoding rejects non-zero trailing bits, so every signature string
// maps to exactly one MAC.
var segmentEncoding = base64.RawURLEncoding.Strict()

func decodes(segment string) bool {
	_, err := segmentEncoding.DecodeString(segment)
	return err == nil
}

// Verify checks the signature, issued-at and expiry of token. Failures are one
// of common.ErrTokenMalformed, common.ErrTokenTampered or
// common.ErrTokenExpired. Once header and payload decode, any defect in the
// signature segment is reported as tampering.
func (c *Codec) Verify(token string) (*Claims, error) {
	header, rest, ok := strings.Cut(token, ".")
	if !ok {
		return nil, common.ErrTokenMalformed
	}
	payload, signature, ok := strings.Cut(rest, ".")
	if !ok || !decodes(header) || !decodes(payload) {
		return nil, common.ErrTokenMalformed
	}
	if !decodes(signature) {
		return nil, common.ErrTokenTampered
	}

	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, common.ErrTokenTampered
		}
		return nil, common.ErrTokenMalformed
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, common.ErrTokenMalformed
	}

	now := c.now()
	if now.Before(claims.IssuedAt.Time) {
		return nil, common.ErrTokenMalformed
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}

	return claims, nil
}
