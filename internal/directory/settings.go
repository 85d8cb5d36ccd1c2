package directory

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog"
)

// Setting names as they appear in the deployment configuration.
const (
	SettingHost             = "LDAP_HOST"
	SettingBindDN           = "LDAP_BIND_DN"
	SettingBindPassword     = "LDAP_BIND_PASSWORD"
	SettingUserSearchDN     = "LDAP_USER_SEARCH_DN"
	SettingUserSearchQuery  = "LDAP_USER_SEARCH_QUERY"
	SettingADBindUser       = "AD_BIND_USER"
	SettingLogin            = "login"
	SettingPassword         = "password"
	DefaultTimeout          = 10 * time.Second
	redacted                = "********"
	defaultLDAPPort         = 389
	defaultLDAPSPort        = 636
	querySlotPositional     = "{0}"
	querySlotAnonymous      = "{}"
	querySlotPrintf         = "%s"
	querySlotNamed          = "{username}"
)

// Strategy selects how a login is verified against the directory.
type Strategy string

const (
	// StrategyAD binds directly as the user with NTLM. This is the default.
	StrategyAD Strategy = "AD"
	// StrategyLDAP binds as a service account, searches the user DN and rebinds as that DN.
	StrategyLDAP Strategy = "LDAP"
)

// ParseStrategy maps a configured LDAP_AUTHENTICATION value onto a Strategy.
// An empty value selects StrategyAD.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", string(StrategyAD):
		return StrategyAD, nil
	case string(StrategyLDAP):
		return StrategyLDAP, nil
	default:
		return "", fmt.Errorf("unknown LDAP_AUTHENTICATION value %q (valid options: AD, LDAP)", value)
	}
}

// Settings is the directory configuration for a single resolution attempt.
// It is passed by value and never mutated by the clients.
type Settings struct {
	Host       string
	Port       int
	UseSSL     bool
	StartTLS   bool
	SkipVerify bool
	Timeout    time.Duration

	// DN search service account.
	BindDN       string
	BindPassword string

	UserSearchDN    string
	UserSearchQuery string

	// NTLM service fallback used when no password is supplied.
	BindUser         string
	BindUserPassword string
	Domain           string
	UserIDPrefix     string

	Strategy Strategy
}

// DefaultSettings returns settings with SSL enabled, the default timeout and the AD strategy.
func DefaultSettings() Settings {
	return Settings{
		UseSSL:   true,
		Timeout:  DefaultTimeout,
		Strategy: StrategyAD,
	}
}

// UsesDNSearch reports whether the DN search then rebind strategy is configured.
func (s Settings) UsesDNSearch() bool {
	return strings.EqualFold(string(s.Strategy), string(StrategyLDAP))
}

func (s Settings) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}

	return s.Timeout
}

// String prints the settings with both passwords redacted.
func (s Settings) String() string {
	return fmt.Sprintf(
		"host=%s port=%d ssl=%t starttls=%t strategy=%s bind_dn=%s bind_password=%s search_dn=%s "+
			"search_query=%s bind_user=%s bind_user_password=%s domain=%s prefix=%s",
		s.Host, s.Port, s.UseSSL, s.StartTLS, s.Strategy, s.BindDN, redact(s.BindPassword), s.UserSearchDN,
		s.UserSearchQuery, s.BindUser, redact(s.BindUserPassword), s.Domain, s.UserIDPrefix,
	)
}

// MarshalZerologObject logs the settings without passwords.
func (s Settings) MarshalZerologObject(e *zerolog.Event) {
	e.Str("host", s.Host).
		Int("port", s.Port).
		Bool("ssl", s.UseSSL).
		Str("strategy", string(s.Strategy)).
		Str("search_dn", s.UserSearchDN)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}

	return redacted
}

// FormatQuery substitutes the escaped login into the search query template.
// The template may use {0}, {}, {username} or %s as its slot.
func FormatQuery(template, login string) string {
	escaped := ldap.EscapeFilter(login)

	return strings.NewReplacer(
		querySlotPositional, escaped,
		querySlotNamed, escaped,
		querySlotAnonymous, escaped,
		querySlotPrintf, escaped,
	).Replace(template)
}
