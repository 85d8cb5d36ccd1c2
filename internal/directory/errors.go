package directory

import (
	"errors"
	"fmt"
)

// ErrBind is the message every rejected credential surfaces with.
// It never tells the caller whether the login or the password was wrong.
var ErrBind = errors.New("provided username and password are incorrect")

// ConfigurationError is returned when a setting required by the selected bind strategy is missing.
type ConfigurationError struct {
	// Setting is the name of the missing setting, e.g. LDAP_HOST.
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s setting was not found or passed as parameter", e.Setting)
}

// BindError is returned when the directory rejected the supplied credentials.
type BindError struct {
	// Login is the identity the bind was attempted for.
	Login string
	// Cause is the directory's own error, kept for server side diagnostics only.
	Cause error
}

func (e *BindError) Error() string {
	return ErrBind.Error()
}

// Unwrap makes errors.Is(err, ErrBind) work.
func (e *BindError) Unwrap() error {
	return ErrBind
}

// DirectoryError is returned for transport or protocol failures talking to the directory server.
type DirectoryError struct {
	Op  string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

func missing(setting string) error {
	return &ConfigurationError{Setting: setting}
}
