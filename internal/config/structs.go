package config

import (
	"time"

	"github.com/authgw/authgw/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enables the mock login form and pretty defaults
	Title     string
	DB        DB
	Log       logger.Log
	Webserver Webserver
	Session   Session
	Gateway   Gateway
	Auth      Auth
	Directory Directory
}

// Webserver implements webserver settings.
type Webserver struct {
	Port           int    // listening port
	URL            string // public base url
	ShutDownTime   int    // seconds to wait for open requests on shutdown
	CleanPath      bool   // collapse duplicate slashes before routing
	DisableRecover bool   // disable the panic recover middleware
	CheckAliveURI  string // health check route, default /checkalive
	ProxyHeader    string // header carrying the client IP behind a proxy, e.g. X-Real-IP
}

// Session settings.
type Session struct {
	// Backend stores session data: memory, mysql, postgres or redis.
	Backend    string
	ExpiryTime time.Duration
	CookieName string
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// Table for the sql backends.
	Table string
	// RedisURL for the redis backend, e.g. redis://localhost:6379/0.
	RedisURL string
}

// Gateway settings of the login and logout flow.
type Gateway struct {
	// LoginURL is an external login page; when set, login and logout redirect there.
	LoginURL string `env:"AUTHGW_LOGIN_URL"`
	// ForceSecureScheme rewrites http targets to https.
	ForceSecureScheme bool `env:"AUTHGW_FORCE_SECURE_SCHEME"`
	// MockLogin enables the development form that sets fake identity cookies.
	MockLogin bool `env:"AUTHGW_MOCK_LOGIN"`
	// DefaultTarget is where a login without _target ends up.
	DefaultTarget string
}

// Auth selects the enabled backends; they are tried in the order local, directory.
type Auth struct {
	LocalDB   bool
	Directory bool
}
