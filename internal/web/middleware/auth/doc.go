// Package auth provides the gateway middleware for the web application.
//
// A request passes when it carries a valid server-side session or an authenticated identity
// cookie bundle. The bundle is only honoured when an external login url or the mock login is
// configured, since nothing else sets those cookies. Everything else is redirected to the login page with the original url as
// _target. The session data or the visitor is put into fiber.Locals for handlers and templates.
//
// The login and logout routes, static files and the health and metrics endpoints are
// never protected.
//
// Usage:
//
//	app.Use(authmiddleware.New(cfg))
package auth
