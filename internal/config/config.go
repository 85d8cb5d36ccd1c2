// Package config reads the gateway configuration from etc/main.toml and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/authgw/authgw/internal/directory"
)

// JSONConfigEnv names the environment variable holding a JSON document merged over the file.
const JSONConfigEnv = "AUTHGW_CONFIG_JSON"

// Supported session backends.
const (
	SessionMemory   = "memory"
	SessionMySQL    = "mysql"
	SessionPostgres = "postgres"
	SessionRedis    = "redis"
)

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

const (
	defaultShutDownTime  = 5
	defaultSessionExpiry = 12 * time.Hour
	defaultCookieName    = "session"
	defaultSessionTable  = "sessions"
	defaultCheckAliveURI = "/checkalive"
	defaultTarget        = "/"
	invalidErrMessage    = "invalid config"
	redacted             = "********"
)

// ReadConfig reads <path>main.toml, merges AUTHGW_CONFIG_JSON over it, applies the
// directory environment overrides and validates the result.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	if _, err := toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if configAsJSON := os.Getenv(JSONConfigEnv); configAsJSON != "" {
		var err error

		if c, err = decodeAndMergeConfig(c, configAsJSON); err != nil {
			return c, err
		}
	}

	if err := applyEnv(&c); err != nil {
		return c, err
	}

	err := validate(&c)

	return c, err
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	if err := json.Unmarshal([]byte(configAsJSON), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+JSONConfigEnv)
	}

	return c, nil
}

// applyEnv overrides the directory and gateway settings from variables such as LDAP_HOST.
// Unset variables keep the file values.
func applyEnv(c *Config) error {
	if err := env.Parse(&c.Directory); err != nil {
		return errors.Wrap(err, "failed to read directory settings from environment")
	}

	if err := env.Parse(&c.Gateway); err != nil {
		return errors.Wrap(err, "failed to read gateway settings from environment")
	}

	return nil
}

// DumpConfig returns the config as TOML with secrets redacted.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(redact(*c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON returns the config as indented JSON with secrets redacted.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(redact(*c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func redact(c Config) Config {
	for _, secret := range []*string{
		&c.DB.Password,
		&c.Directory.BindPassword,
		&c.Directory.BindUserPassword,
	} {
		if *secret != "" {
			*secret = redacted
		}
	}

	if c.Session.RedisURL != "" {
		c.Session.RedisURL = redactURL(c.Session.RedisURL)
	}

	return c
}

// redactURL hides the password of a URL with user info.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}

	userInfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}

	if user, _, hasPassword := strings.Cut(userInfo, ":"); hasPassword {
		return scheme + "://" + user + ":" + redacted + "@" + host
	}

	return raw
}

// validate checks the settings the gateway cannot start without and fills in defaults.
func validate(c *Config) error {
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if err := validateSession(&c.Session); err != nil {
		return err
	}

	switch strings.ToLower(c.DB.GormEngine) {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineMySQL, EnginePostgres, EngineSQLite:
		c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
	default:
		return errors.Wrapf(ErrUnknownGormEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
	}

	if !c.Auth.LocalDB && !c.Auth.Directory {
		return errors.Wrap(ErrNoAuthBackend, invalidErrMessage)
	}

	if c.Gateway.DefaultTarget == "" {
		c.Gateway.DefaultTarget = defaultTarget
	}

	if _, err := directory.ParseStrategy(c.Directory.Authentication); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}

func validateSession(s *Session) error {
	if s.ExpiryTime <= 0 {
		s.ExpiryTime = defaultSessionExpiry
	}

	if s.CookieName == "" {
		s.CookieName = defaultCookieName
	}

	if s.Table == "" {
		s.Table = defaultSessionTable
	}

	switch strings.ToLower(s.Backend) {
	case "":
		s.Backend = SessionMemory
	case SessionMemory, SessionMySQL, SessionPostgres, SessionRedis:
		s.Backend = strings.ToLower(s.Backend)
	default:
		return errors.Wrapf(ErrUnknownSessionBackend, "%s: %q", invalidErrMessage, s.Backend)
	}

	return nil
}
