package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/polar-sync/pkg/errors"
)

// ErrMissingCredentials is returned when no access token was supplied.
var ErrMissingCredentials = fmt.Errorf("missing credentials")

// Handler defines the interface for auth handlers
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// BearerAuth sets an organization access token as a Bearer credential.
type BearerAuth struct {
	Token string
}

// NewBearerAuth creates a new bearer token authentication handler.
// The token is checked up front so a run never reaches the network without one.
func NewBearerAuth(token string) (*BearerAuth, error) {
	if token == "" {
		return nil, errors.WrapError(ErrMissingCredentials, errors.ErrConfiguration, "create bearer auth")
	}
	return &BearerAuth{Token: token}, nil
}

// ApplyAuth adds the Bearer token to the Authorization header
func (b *BearerAuth) ApplyAuth(req *http.Request) error {
	if b.Token == "" {
		return errors.WrapError(ErrMissingCredentials, errors.ErrConfiguration, "apply bearer auth")
	}

	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// String never exposes the token.
func (b *BearerAuth) String() string {
	return "BearerAuth(token: [REDACTED])"
}
