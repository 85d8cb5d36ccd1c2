// Package logout ends the gateway session.
package logout

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/web/handler"
	"github.com/authgw/authgw/internal/web/requestauth"
	"github.com/authgw/authgw/internal/web/session"
)

// Path is the path to the logout route.
const Path = handler.AuthPath + "/logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	// logout route (outside auth middleware protection)
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Logout)
		router.Post(handler.RootPath, s.Logout)
	})

	return nil
}

// Logout deletes the server-side session. With an external login url it redirects there
// with command=logout, otherwise it clears the cookie bundle and redirects to _target.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(s.cfg.Session.CookieName); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	s.clearCookie(c, s.cfg.Session.CookieName)

	target := handler.TargetOr(c.Query(handler.TargetParam), s.cfg.Gateway.DefaultTarget)

	if s.cfg.Gateway.LoginURL != "" {
		target = handler.AbsoluteTarget(c, target, s.cfg.Gateway.ForceSecureScheme)

		return c.Redirect(s.cfg.Gateway.LoginURL + handler.BuildQuery(c, target, true, handler.LogoutCommand))
	}

	for _, name := range requestauth.BundleCookies {
		s.clearCookie(c, name)
	}

	return c.Redirect(target + handler.BuildQuery(c, "", false, ""))
}

func (s *Service) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     handler.RootPath,
		Expires:  time.Unix(0, 0),
		Secure:   s.cfg.Session.CookieSecure && !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
