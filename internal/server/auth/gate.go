package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/movieapi/internal/common"
)

// TokenVerifier is satisfied by *Codec.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Gate admits requests that carry a valid bearer token.
type Gate struct {
	verifier TokenVerifier
}

func NewGate(v TokenVerifier) *Gate {
	return &Gate{verifier: v}
}

// BearerToken extracts the token from an Authorization header value. The
// "Bearer " prefix is case-sensitive; anything else yields common.ErrNoToken.
func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return "", common.ErrNoToken
	}
	return token, nil
}

// Admit returns the verified claims for header. A missing token is
// common.ErrNoToken; any verification failure is common.ErrForbidden
// wrapping the codec error.
func (g *Gate) Admit(header string) (*Claims, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrForbidden, err)
	}
	return claims, nil
}
