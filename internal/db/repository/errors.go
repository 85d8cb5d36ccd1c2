package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUsernameEmpty is returned when a user is looked up or stored without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrGroupNameEmpty is returned when a group is stored without a name.
	ErrGroupNameEmpty = errors.New("group name cannot be empty")
	// ErrGroupNotFound is returned when a group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupAlreadyExists is returned when creating a group whose name is taken.
	ErrGroupAlreadyExists = errors.New("group already exists")
)

// Error wraps a failure of the local user store.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Op: op, Err: err}
}
