package handler

import (
	"github.com/authgw/authgw/internal/auth"
)

// Authenticator checks submitted credentials, usually an *auth.Chain.
type Authenticator interface {
	Authenticate(username, password string) (auth.Result, error)
}

var _ Authenticator = (*auth.Chain)(nil)
