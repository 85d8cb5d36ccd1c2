package auth

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/identity"
)

// BackendDirectory is the name of DirectoryBackend.
const BackendDirectory = "directory"

// Resolver resolves a login against the directory.
type Resolver interface {
	Resolve(settings directory.Settings, login, password string) (*directory.Profile, error)
}

// Syncer maps an authenticated profile onto a local user.
type Syncer interface {
	Sync(profile *directory.Profile, requestedLogin string, allowlist identity.Allowlist) (*models.User, error)
}

// DirectoryBackend authenticates against LDAP or Active Directory.
type DirectoryBackend struct {
	settings  func() (directory.Settings, error)
	allowlist func() identity.Allowlist
	resolver  Resolver
	sync      Syncer
}

// NewDirectoryBackend creates the backend. settings and allowlist are read on every attempt so
// configuration changes apply to the next login.
func NewDirectoryBackend(
	settings func() (directory.Settings, error),
	allowlist func() identity.Allowlist,
	resolver Resolver,
	sync Syncer,
) *DirectoryBackend {
	if allowlist == nil {
		allowlist = func() identity.Allowlist { return nil }
	}

	return &DirectoryBackend{
		settings:  settings,
		allowlist: allowlist,
		resolver:  resolver,
		sync:      sync,
	}
}

// Name implements Backend.
func (b *DirectoryBackend) Name() string {
	return BackendDirectory
}

// Authenticate implements Backend.
//
// A missing setting is returned as the *directory.ConfigurationError. Rejected credentials and
// directory outages defer; user store failures are returned.
func (b *DirectoryBackend) Authenticate(username, password string) (Result, error) {
	settings, err := b.settings()
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	profile, err := b.resolver.Resolve(settings, username, password)

	observeResolve(string(settings.Strategy), start)

	if err != nil {
		return Result{}, classify(err, username)
	}

	user, err := b.sync.Sync(profile, username, b.allowlist())
	if err != nil {
		return Result{}, err
	}

	if user == nil {
		log.Debug().Str("username", username).Msg("directory profile is not authenticated")

		return Result{}, nil
	}

	if !user.Active {
		log.Warn().Str("username", username).Msg("directory user is disabled locally")

		return Result{}, nil
	}

	return accepted(user), nil
}

// classify returns the errors that must stop the attempt and logs the ones that only defer.
func classify(err error, username string) error {
	var (
		cfgErr  *directory.ConfigurationError
		bindErr *directory.BindError
	)

	switch {
	case errors.As(err, &cfgErr):
		return err
	case errors.As(err, &bindErr):
		log.Debug().Str("username", username).Msg("directory rejected credentials")
	default:
		log.Error().Err(err).Str("username", username).Msg("directory lookup failed")
	}

	return nil
}
