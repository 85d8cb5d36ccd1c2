package directory

import (
	"strings"

	"github.com/rs/zerolog/log"
)

const domainSeparator = `\`

// NTLMClient verifies a login with a single NTLM bind as the user.
// Without a password it binds with the configured AD service user instead, which only looks the
// user up and never marks the profile authenticated.
type NTLMClient struct {
	settings Settings
	opts     clientOptions
}

// NewNTLMClient creates an NTLM client for one resolution attempt.
func NewNTLMClient(settings Settings, opts ...ClientOption) *NTLMClient {
	return &NTLMClient{
		settings: settings,
		opts:     newClientOptions(opts),
	}
}

// NormalizeLogin turns a login into the identity used for binding, e.g. bob becomes CORP\bob
// with domain CORP, and u:CORP\bob with the additional user id prefix u:.
func (c *NTLMClient) NormalizeLogin(login string) string {
	if login == "" {
		return login
	}

	if c.settings.Domain != "" && !strings.Contains(login, domainSeparator) {
		login = c.settings.Domain + domainSeparator + login
	}

	if c.settings.UserIDPrefix != "" && !strings.HasPrefix(login, c.settings.UserIDPrefix) {
		login = c.settings.UserIDPrefix + login
	}

	return login
}

// Bind implements Client.
func (c *NTLMClient) Bind(login, password string) (*Profile, error) {
	if c.settings.Host == "" {
		return nil, missing(SettingHost)
	}

	if login == "" {
		return nil, missing(SettingLogin)
	}

	bindUser, bindPassword := c.NormalizeLogin(login), password

	if password == "" {
		if c.settings.BindUser == "" {
			return nil, missing(SettingADBindUser)
		}

		bindUser, bindPassword = c.NormalizeLogin(c.settings.BindUser), c.settings.BindUserPassword
	}

	if c.settings.UserSearchDN == "" {
		return nil, missing(SettingUserSearchDN)
	}

	if c.settings.UserSearchQuery == "" {
		return nil, missing(SettingUserSearchQuery)
	}

	conn, err := c.opts.dialer.Dial(BuildServerHandle(c.settings))
	if err != nil {
		return nil, &DirectoryError{Op: "dial", Err: err}
	}

	defer closeConn(conn, "ntlm")

	if err = c.bind(conn, bindUser, bindPassword); err != nil {
		log.Debug().Err(err).Str("bind_user", bindUser).Msg("directory rejected ntlm bind")

		return nil, &BindError{Login: login, Cause: err}
	}

	profile := c.opts.newProfile()
	if password != "" && bindUser == c.NormalizeLogin(login) {
		profile.IsAuthenticated = true
	}

	if err = searchInto(conn, c.settings, c.accountName(login), profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// bind uses NTLM when the identity carries a domain and a simple bind (UPN style) otherwise.
func (c *NTLMClient) bind(conn Conn, identity, password string) error {
	account := identity
	if c.settings.UserIDPrefix != "" {
		account = strings.TrimPrefix(account, c.settings.UserIDPrefix)
	}

	domain, user, found := strings.Cut(account, domainSeparator)
	if !found {
		return conn.Bind(identity, password)
	}

	return conn.NTLMBind(domain, user, password)
}

// accountName strips the user id prefix and domain so equivalent logins search the same entry.
func (c *NTLMClient) accountName(login string) string {
	if c.settings.UserIDPrefix != "" {
		login = strings.TrimPrefix(login, c.settings.UserIDPrefix)
	}

	if _, user, found := strings.Cut(login, domainSeparator); found {
		return user
	}

	return login
}
