package auth

import "errors"

var (
	// ErrUserNameExists is returned when creating a user whose username is taken.
	ErrUserNameExists = errors.New("user with this username already exists")

	// ErrPasswordEmpty is returned when creating a local user without a password.
	ErrPasswordEmpty = errors.New("password can not be empty")

	// ErrNoBackend is returned by a Chain without backends.
	ErrNoBackend = errors.New("no authentication backend configured")
)
