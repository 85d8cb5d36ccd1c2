package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/web/handler"
	"github.com/authgw/authgw/internal/web/handler/login"
	"github.com/authgw/authgw/internal/web/requestauth"
	"github.com/authgw/authgw/internal/web/session"
)

// MetricsPath is served by the web service without authentication.
const MetricsPath = "/metrics"

// New returns the gateway middleware.
func New(cfg *config.Config) fiber.Handler {
	public := []string{
		"/static",
		handler.AuthPath + "/",
		MetricsPath,
		cfg.Webserver.CheckAliveURI,
	}
	trustBundle := TrustsCookieBundle(cfg.Gateway)

	return func(c *fiber.Ctx) error {
		if IsPublic(c, public) {
			return c.Next()
		}

		if sessData, ok := Session(c, cfg.Session.CookieName); ok {
			c.Locals(handler.CurrentUserKey, sessData)
			return c.Next()
		}

		if trustBundle {
			if visitor := requestauth.FromCtx(c); visitor.IsAuthenticated() {
				requestauth.Store(c, visitor)
				return c.Next()
			}
		}

		return c.Redirect(LoginRedirect(c.OriginalURL()))
	}
}

// TrustsCookieBundle reports whether something issues the identity cookie bundle:
// the external login service or the mock login.
func TrustsCookieBundle(gw config.Gateway) bool {
	return gw.LoginURL != "" || gw.MockLogin
}

// Session returns the session data of the request when it is valid.
func Session(c *fiber.Ctx, cookieName string) (*session.Data, bool) {
	sessionID := c.Cookies(cookieName)
	if sessionID == "" {
		return nil, false
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil || !sessData.Valid() {
		return nil, false
	}

	return sessData, true
}

// LoginRedirect is the login page url returning to target.
func LoginRedirect(target string) string {
	return login.Path + "/?" + handler.TargetParam + "=" + url.QueryEscape(target)
}

// IsPublic reports whether the request path starts with one of prefixes.
func IsPublic(c *fiber.Ctx, prefixes []string) bool {
	p := strings.ToLower(c.Path())
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}

		if p == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(p, prefix) {
			return true
		}
	}

	return false
}
