// Package home shows who the gateway thinks the visitor is.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/web/handler"
	"github.com/authgw/authgw/internal/web/handler/logout"
	"github.com/authgw/authgw/internal/web/requestauth"
	"github.com/authgw/authgw/internal/web/session"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "home"
)

// Service is the home handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the home handler.
var Handler = Service{}

// Init registers the home route; it must run behind the gateway middleware.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Get)

	return nil
}

// Get renders the identity of the session or of the cookie bundle.
func (s *Service) Get(c *fiber.Ctx) error {
	data := fiber.Map{
		"title":      s.cfg.Title,
		"logout_url": logout.Path + "/",
	}

	if user, ok := c.Locals(handler.CurrentUserKey).(*session.Data); ok {
		data["user"] = user
		data["source"] = "session"
	} else if v := requestauth.Load(c); v != nil {
		data["visitor"] = v
		data["source"] = "cookies"
	}

	return c.Render(TemplateName, data)
}
