package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownSessionBackend error if session.backend is not memory, mysql, postgres or redis.
	ErrUnknownSessionBackend = errors.New("toml config session.backend is not supported")

	// ErrUnknownGormEngine error if db.gormEngine is not mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine is not supported")

	// ErrNoAuthBackend error if neither local nor directory authentication is enabled.
	ErrNoAuthBackend = errors.New("toml config auth enables no backend")
)
