package directory

import (
	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// DNSearchClient verifies a login in two phases: a service account bind and search to find the
// user's DN, then a second connection bound as that DN with the supplied password.
type DNSearchClient struct {
	settings Settings
	opts     clientOptions
}

// NewDNSearchClient creates a DN search client for one resolution attempt.
func NewDNSearchClient(settings Settings, opts ...ClientOption) *DNSearchClient {
	return &DNSearchClient{
		settings: settings,
		opts:     newClientOptions(opts),
	}
}

// Bind implements Client.
//
// A search without a match returns an empty, unauthenticated profile and no error.
// A failed rebind returns the populated profile together with a *BindError.
func (c *DNSearchClient) Bind(login, password string) (*Profile, error) {
	if err := c.validate(login, password); err != nil {
		return nil, err
	}

	handle := BuildServerHandle(c.settings)
	profile := c.opts.newProfile()

	if err := c.lookup(handle, login, profile); err != nil {
		return nil, err
	}

	if profile.DistinguishedName == "" {
		return profile, nil
	}

	if err := c.verify(handle, login, profile.DistinguishedName, password); err != nil {
		return profile, err
	}

	profile.IsAuthenticated = true

	return profile, nil
}

func (c *DNSearchClient) validate(login, password string) error {
	required := []struct {
		setting string
		value   string
	}{
		{SettingHost, c.settings.Host},
		{SettingBindDN, c.settings.BindDN},
		{SettingBindPassword, c.settings.BindPassword},
		{SettingUserSearchDN, c.settings.UserSearchDN},
		{SettingUserSearchQuery, c.settings.UserSearchQuery},
		{SettingLogin, login},
		{SettingPassword, password},
	}

	for _, r := range required {
		if r.value == "" {
			return missing(r.setting)
		}
	}

	return nil
}

// lookup binds as the service account and loads the user's entry.
func (c *DNSearchClient) lookup(handle ServerHandle, login string, profile *Profile) error {
	conn, err := c.opts.dialer.Dial(handle)
	if err != nil {
		return &DirectoryError{Op: "dial", Err: err}
	}

	defer closeConn(conn, "service")

	if err = conn.Bind(c.settings.BindDN, c.settings.BindPassword); err != nil {
		return &DirectoryError{Op: "service bind", Err: err}
	}

	return searchInto(conn, c.settings, login, profile)
}

// verify rebinds on a fresh connection as the resolved DN.
func (c *DNSearchClient) verify(handle ServerHandle, login, userDN, password string) error {
	conn, err := c.opts.dialer.Dial(handle)
	if err != nil {
		return &DirectoryError{Op: "dial", Err: err}
	}

	defer closeConn(conn, "user")

	if err = conn.Bind(userDN, password); err != nil {
		if isCredentialError(err) {
			log.Debug().Str("login", login).Str("dn", userDN).Msg("directory rejected user bind")

			return &BindError{Login: login, Cause: err}
		}

		return &DirectoryError{Op: "user bind", Err: err}
	}

	return nil
}

// isCredentialError reports whether the server refused the bind because of the credentials.
func isCredentialError(err error) bool {
	return ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultInappropriateAuthentication) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultInsufficientAccessRights) ||
		ldap.IsErrorWithCode(err, ldap.LDAPResultUnwillingToPerform)
}
