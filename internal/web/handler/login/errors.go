package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed
	// or fails validation.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrNoAuthMethod is returned when the handler is initialized without an authenticator.
	ErrNoAuthMethod = errors.New("no authentication method available")

	// ErrInvalidCredentials is shown for every login that no backend accepted.
	ErrInvalidCredentials = errors.New("Invalid username or password") //nolint:staticcheck // shown to users as is

	// ErrInternalServerError is returned for unexpected failures during the login
	// process.
	ErrInternalServerError = errors.New("internal server error")
)
