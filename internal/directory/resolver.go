package directory

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Resolver picks the client matching the configured strategy and resolves a login with it.
// It holds no per attempt state and is safe for concurrent use.
type Resolver struct {
	opts []ClientOption
}

// NewResolver creates a resolver; the options are handed to every client it builds.
func NewResolver(opts ...ClientOption) *Resolver {
	return &Resolver{opts: opts}
}

// ClientFor returns the DN search client for StrategyLDAP and the NTLM client otherwise.
func (r *Resolver) ClientFor(settings Settings) Client {
	if settings.UsesDNSearch() {
		return NewDNSearchClient(settings, r.opts...)
	}

	return NewNTLMClient(settings, r.opts...)
}

// Resolve binds login with password and returns the resulting profile.
// Client errors are returned unchanged.
func (r *Resolver) Resolve(settings Settings, login, password string) (*Profile, error) {
	start := time.Now()

	profile, err := r.ClientFor(settings).Bind(login, password)

	log.Trace().Str("login", login).Str("strategy", string(settings.Strategy)).
		Dur("elapsed", time.Since(start)).Bool("failed", err != nil).Msg("directory resolve finished")

	return profile, err
}
