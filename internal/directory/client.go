package directory

import (
	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// Client verifies a login against the directory and returns the user's profile.
//
// Errors are *ConfigurationError for missing settings, *BindError for rejected credentials and
// *DirectoryError for transport or protocol failures.
type Client interface {
	Bind(login, password string) (*Profile, error)
}

// ClientOption customizes a client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	dialer     Dialer
	newProfile ProfileFactory
}

// WithDialer replaces the network dialer, mostly for tests.
func WithDialer(d Dialer) ClientOption {
	return func(o *clientOptions) {
		if d != nil {
			o.dialer = d
		}
	}
}

// WithProfileFactory replaces the profile constructor, e.g. to pre-populate deployment specific defaults.
func WithProfileFactory(f ProfileFactory) ClientOption {
	return func(o *clientOptions) {
		if f != nil {
			o.newProfile = f
		}
	}
}

func newClientOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		dialer:     NetDialer,
		newProfile: NewProfile,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// searchInto runs the user search on an already bound connection and loads the first entry into p.
// No match leaves p untouched.
func searchInto(conn Conn, s Settings, login string, p *Profile) error {
	searchRequest := ldap.NewSearchRequest(
		s.UserSearchDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // Size limit
		int(s.timeout().Seconds()),
		false,
		FormatQuery(s.UserSearchQuery, login),
		searchAttributes,
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return &DirectoryError{Op: "search", Err: err}
	}

	switch {
	case result == nil || len(result.Entries) == 0:
		log.Debug().Str("login", login).Str("filter", searchRequest.Filter).Msg("no directory entry matched login")

		return nil
	case len(result.Entries) > 1:
		log.Warn().Str("login", login).Int("entries", len(result.Entries)).
			Msg("directory search matched more than one entry, using the first")
	}

	LoadEntry(p, result.Entries[0])

	return nil
}
