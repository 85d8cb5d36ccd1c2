package directory

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// Conn is the subset of *ldap.Conn the clients need.
type Conn interface {
	Bind(username, password string) error
	NTLMBind(domain, username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

var _ Conn = (*ldap.Conn)(nil)

// Dialer opens a Conn to the server described by a ServerHandle.
type Dialer interface {
	Dial(handle ServerHandle) (Conn, error)
}

// DialerFunc makes it easy to use a func as a Dialer.
type DialerFunc func(handle ServerHandle) (Conn, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(handle ServerHandle) (Conn, error) {
	return f(handle)
}

// ServerHandle is the resolved address and transport security of the directory server.
type ServerHandle struct {
	URL       string
	Host      string
	TLSConfig *tls.Config
	StartTLS  bool
	Timeout   time.Duration
}

// BuildServerHandle resolves host, port and TLS settings.
// Without an explicit port 636 is used for SSL and 389 otherwise.
func BuildServerHandle(s Settings) ServerHandle {
	port := s.Port
	if port == 0 {
		port = defaultLDAPPort
		if s.UseSSL {
			port = defaultLDAPSPort
		}
	}

	hostPort := net.JoinHostPort(s.Host, strconv.Itoa(port))

	handle := ServerHandle{
		URL:      "ldap://" + hostPort,
		Host:     s.Host,
		StartTLS: !s.UseSSL && s.StartTLS,
		Timeout:  s.timeout(),
	}

	if s.UseSSL {
		handle.URL = "ldaps://" + hostPort
	}

	if s.UseSSL || s.StartTLS {
		handle.TLSConfig = &tls.Config{
			InsecureSkipVerify: s.SkipVerify, //nolint:gosec // operator opt-in for test directories
			ServerName:         s.Host,
			MinVersion:         tls.VersionTLS12,
		}
	}

	return handle
}

// NetDialer dials real directory servers with go-ldap.
var NetDialer Dialer = DialerFunc(dialNet)

func dialNet(handle ServerHandle) (Conn, error) {
	conn, err := ldap.DialURL(
		handle.URL,
		ldap.DialWithTLSConfig(handle.TLSConfig),
		ldap.DialWithDialer(&net.Dialer{Timeout: handle.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", handle.URL, err)
	}

	if handle.StartTLS {
		if errStartTLS := conn.StartTLS(handle.TLSConfig); errStartTLS != nil {
			closeConn(conn, "starttls")

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	conn.SetTimeout(handle.Timeout)

	return conn, nil
}

func closeConn(conn Conn, purpose string) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Str("conn", purpose).Msg("failed to close directory connection")
	}
}
