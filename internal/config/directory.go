package config

import (
	"time"

	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/identity"
)

// Directory holds the directory settings under the names operators know from the deployment
// environment. Every field can be overridden by the environment variable of the same name.
type Directory struct {
	Host       string        `toml:"LDAP_HOST" json:"LDAP_HOST" env:"LDAP_HOST"`
	Port       int           `toml:"LDAP_PORT" json:"LDAP_PORT" env:"LDAP_PORT"`
	UseSSL     *bool         `toml:"LDAP_USE_SSL" json:"LDAP_USE_SSL" env:"LDAP_USE_SSL"`
	StartTLS   bool          `toml:"LDAP_START_TLS" json:"LDAP_START_TLS" env:"LDAP_START_TLS"`
	SkipVerify bool          `toml:"LDAP_SKIP_VERIFY" json:"LDAP_SKIP_VERIFY" env:"LDAP_SKIP_VERIFY"`
	Timeout    time.Duration `toml:"LDAP_TIMEOUT" json:"LDAP_TIMEOUT" env:"LDAP_TIMEOUT"`

	BindDN          string `toml:"LDAP_BIND_DN" json:"LDAP_BIND_DN" env:"LDAP_BIND_DN"`
	BindPassword    string `toml:"LDAP_BIND_PASSWORD" json:"LDAP_BIND_PASSWORD" env:"LDAP_BIND_PASSWORD"`
	UserSearchDN    string `toml:"LDAP_USER_SEARCH_DN" json:"LDAP_USER_SEARCH_DN" env:"LDAP_USER_SEARCH_DN"`
	UserSearchQuery string `toml:"LDAP_USER_SEARCH_QUERY" json:"LDAP_USER_SEARCH_QUERY" env:"LDAP_USER_SEARCH_QUERY"`
	Authentication  string `toml:"LDAP_AUTHENTICATION" json:"LDAP_AUTHENTICATION" env:"LDAP_AUTHENTICATION"`

	BindUser         string `toml:"AD_BIND_USER" json:"AD_BIND_USER" env:"AD_BIND_USER"`
	BindUserPassword string `toml:"AD_BIND_PASSWORD" json:"AD_BIND_PASSWORD" env:"AD_BIND_PASSWORD"`
	Domain           string `toml:"AD_DOMAIN" json:"AD_DOMAIN" env:"AD_DOMAIN"`
	UserIDPrefix     string `toml:"AD_USER_ID_PREFIX" json:"AD_USER_ID_PREFIX" env:"AD_USER_ID_PREFIX"`

	// AuthenticatedGroups is a comma separated string or a list of group names.
	AuthenticatedGroups any `toml:"LDAP_AUTHENTICATED_GROUPS" json:"LDAP_AUTHENTICATED_GROUPS"`
	// AuthenticatedGroupsEnv carries LDAP_AUTHENTICATED_GROUPS from the environment and wins when set.
	AuthenticatedGroupsEnv string `toml:"-" json:"-" env:"LDAP_AUTHENTICATED_GROUPS"`

	SuperuserGroup string `toml:"LDAP_SUPERUSER_GROUP" json:"LDAP_SUPERUSER_GROUP" env:"LDAP_SUPERUSER_GROUP"`
}

// Settings converts the configuration into the resolver's settings.
// LDAP_USE_SSL defaults to true and LDAP_TIMEOUT to directory.DefaultTimeout.
func (d Directory) Settings() (directory.Settings, error) {
	strategy, err := directory.ParseStrategy(d.Authentication)
	if err != nil {
		return directory.Settings{}, err
	}

	s := directory.DefaultSettings()
	s.Host = d.Host
	s.Port = d.Port
	s.StartTLS = d.StartTLS
	s.SkipVerify = d.SkipVerify
	s.BindDN = d.BindDN
	s.BindPassword = d.BindPassword
	s.UserSearchDN = d.UserSearchDN
	s.UserSearchQuery = d.UserSearchQuery
	s.BindUser = d.BindUser
	s.BindUserPassword = d.BindUserPassword
	s.Domain = d.Domain
	s.UserIDPrefix = d.UserIDPrefix
	s.Strategy = strategy

	if d.UseSSL != nil {
		s.UseSSL = *d.UseSSL
	}

	if d.Timeout > 0 {
		s.Timeout = d.Timeout
	}

	return s, nil
}

// Allowlist returns the normalized LDAP_AUTHENTICATED_GROUPS.
func (d Directory) Allowlist() identity.Allowlist {
	if d.AuthenticatedGroupsEnv != "" {
		return identity.ParseAllowlist(d.AuthenticatedGroupsEnv)
	}

	return identity.ParseAllowlist(d.AuthenticatedGroups)
}
