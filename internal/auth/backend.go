package auth

import (
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/db/models"
)

// Outcome of an authentication attempt.
type Outcome int

const (
	// Deferred means this backend does not vouch for the credentials; another backend may.
	Deferred Outcome = iota
	// Accepted means the credentials are valid and Result.User is set.
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}

	return "deferred"
}

// Result of Backend.Authenticate. User is only set when Outcome is Accepted.
type Result struct {
	Outcome Outcome
	User    *models.User
}

func accepted(user *models.User) Result {
	return Result{Outcome: Accepted, User: user}
}

// Backend authenticates a username and password.
type Backend interface {
	// Name labels the backend in logs and metrics.
	Name() string
	Authenticate(username, password string) (Result, error)
}

// Chain tries backends in order.
type Chain struct {
	backends []Backend
}

// NewChain returns a chain over the given backends; nil entries are skipped.
func NewChain(backends ...Backend) *Chain {
	c := &Chain{}

	for _, b := range backends {
		if b != nil {
			c.backends = append(c.backends, b)
		}
	}

	return c
}

// Len returns the number of backends.
func (c *Chain) Len() int {
	return len(c.backends)
}

// Authenticate returns the first Accepted result. The first hard error stops the chain.
// When every backend defers the result is Deferred.
func (c *Chain) Authenticate(username, password string) (Result, error) {
	if len(c.backends) == 0 {
		return Result{}, ErrNoBackend
	}

	for _, b := range c.backends {
		result, err := b.Authenticate(username, password)

		observeAttempt(b.Name(), result, err)

		if err != nil {
			log.Error().Err(err).Str("backend", b.Name()).Str("username", username).Msg("authentication failed")

			return Result{}, err
		}

		if result.Outcome == Accepted && result.User != nil {
			log.Info().Str("backend", b.Name()).Str("username", username).Msg("user authenticated")

			return result, nil
		}
	}

	log.Debug().Str("username", username).Msg("all authentication backends deferred")

	return Result{}, nil
}
