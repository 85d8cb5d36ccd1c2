// Package login serves the gateway's login page.
//
// With an external login url configured the page only redirects there. Otherwise it renders
// a form whose credentials run through the auth chain; in mock mode a form without password
// sets the identity cookie bundle directly.
package login

import (
	"errors"
	"math/rand"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/auth"
	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/web/handler"
	"github.com/authgw/authgw/internal/web/requestauth"
	"github.com/authgw/authgw/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.AuthPath + "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"

	crmIDLength = 7
	maxMockID   = 1000
)

// Form is the credential form.
type Form struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Target   string `form:"target"`
}

// MockForm is the development form that fakes the upstream login service.
type MockForm struct {
	First  string `form:"first"`
	Last   string `form:"last"`
	Email  string `form:"email" validate:"omitempty,email"`
	CID    string `form:"cid"`
	Target string `form:"target"`
}

// Service is the login handler service.
type Service struct {
	cfg      *config.Config
	auth     handler.Authenticator
	validate *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, authenticator handler.Authenticator) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if authenticator == nil && !cfg.Gateway.MockLogin && cfg.Gateway.LoginURL == "" {
		return ErrNoAuthMethod
	}

	s.cfg = cfg
	s.auth = authenticator
	s.validate = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get redirects to the external login service or renders the login form.
func (s *Service) Get(c *fiber.Ctx) error {
	target := c.Query(handler.TargetParam)

	if s.cfg.Gateway.LoginURL != "" {
		if target != "" {
			target = handler.AbsoluteTarget(c, target, s.cfg.Gateway.ForceSecureScheme)
		}

		return c.Redirect(s.cfg.Gateway.LoginURL + handler.BuildQuery(c, target, true, ""))
	}

	// already logged in
	sessData := new(session.Data)
	if err := sessData.Read(c.Cookies(s.cfg.Session.CookieName)); err == nil && sessData.Valid() {
		return c.Redirect(handler.TargetOr(target, s.cfg.Gateway.DefaultTarget))
	}

	return s.render(c, fiber.StatusOK, target, nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	if s.cfg.Gateway.MockLogin && c.FormValue("password") == "" {
		return s.mockLogin(c)
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusOK, c.FormValue("target"), ErrInvalidFormData)
	}

	if err := s.validate.Struct(form); err != nil {
		return s.render(c, fiber.StatusOK, form.Target, ErrInvalidFormData)
	}

	if s.auth == nil {
		return s.render(c, fiber.StatusOK, form.Target, ErrNoAuthMethod)
	}

	result, err := s.auth.Authenticate(form.Username, form.Password)
	if err != nil {
		log.Error().Err(err).Str("username", form.Username).Msg("login failed")

		return s.render(c, fiber.StatusInternalServerError, form.Target, ErrInternalServerError)
	}

	if result.Outcome != auth.Accepted || result.User == nil {
		return s.render(c, fiber.StatusOK, form.Target, ErrInvalidCredentials)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.render(c, fiber.StatusInternalServerError, form.Target, ErrInternalServerError)
	}

	if err = session.NewData(result.User).Write(sessionID, s.cfg.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, fiber.StatusInternalServerError, form.Target, ErrInternalServerError)
	}

	// set login cookie
	c.Cookie(s.cookie(s.cfg.Session.CookieName, sessionID, int(s.cfg.Session.ExpiryTime.Seconds())))
	c.Cookie(s.cookie(requestauth.CookieFirstName, result.User.FirstName, 0))
	c.Cookie(s.cookie(requestauth.CookieLastName, result.User.LastName, 0))
	c.Cookie(s.cookie(requestauth.CookieEmail, result.User.Email, 0))

	log.Info().Str("username", result.User.Username).Str("ip", c.IP()).Msg("user logged in")

	return c.Redirect(handler.TargetOr(form.Target, s.cfg.Gateway.DefaultTarget))
}

// mockLogin sets the cookie bundle the upstream login service would set.
func (s *Service) mockLogin(c *fiber.Ctx) error {
	form := new(MockForm)
	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusOK, c.FormValue("target"), ErrInvalidFormData)
	}

	if err := s.validate.Struct(form); err != nil {
		return s.render(c, fiber.StatusOK, form.Target, ErrInvalidFormData)
	}

	crmID := form.CID
	if crmID == "" {
		crmID = uuid.NewString()[:crmIDLength]
	}

	c.Cookie(s.cookie(requestauth.CookieFirstName, form.First, 0))
	c.Cookie(s.cookie(requestauth.CookieLastName, form.Last, 0))
	c.Cookie(s.cookie(requestauth.CookieEmail, form.Email, 0))
	c.Cookie(s.cookie(requestauth.CookieCRMID, crmID, 0))
	c.Cookie(s.cookie(requestauth.CookieAuth, uuid.NewString(), 0))
	c.Cookie(s.cookie(requestauth.CookieAuthID, strconv.Itoa(rand.Intn(maxMockID)+1), 0)) //nolint:gosec // fake id

	log.Warn().Str("crm_id", crmID).Msg("mock login cookies set")

	return c.Redirect(handler.TargetOr(form.Target, s.cfg.Gateway.DefaultTarget))
}

func (s *Service) render(c *fiber.Ctx, status int, target string, loginErr error) error {
	data := fiber.Map{
		"title":      s.cfg.Title,
		"first":      c.Cookies(requestauth.CookieFirstName),
		"last":       c.Cookies(requestauth.CookieLastName),
		"email":      c.Cookies(requestauth.CookieEmail),
		"cid":        c.Cookies(requestauth.CookieCRMID),
		"target":     target,
		"mock_login": s.cfg.Gateway.MockLogin,
	}

	if loginErr != nil {
		data["error"] = loginErr.Error()
	}

	return c.Status(status).Render(TemplateName, data)
}

func (s *Service) cookie(name, value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     handler.RootPath,
		MaxAge:   maxAge,
		Secure:   s.cfg.Session.CookieSecure && !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
