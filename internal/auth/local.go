package auth

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/authgw/authgw/internal/db/models"
)

// BackendLocal is the name of LocalBackend.
const BackendLocal = "local"

// UserStore is what LocalBackend needs from the user repository.
type UserStore interface {
	FindByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}

// LocalBackend authenticates accounts with a locally stored password hash.
type LocalBackend struct {
	users UserStore
}

// NewLocalBackend creates a local authentication backend.
func NewLocalBackend(users UserStore) *LocalBackend {
	return &LocalBackend{users: users}
}

// Name implements Backend.
func (b *LocalBackend) Name() string {
	return BackendLocal
}

// Authenticate accepts active local users with a matching password and defers otherwise,
// so directory users with the same username are left to the directory backend.
func (b *LocalBackend) Authenticate(username, password string) (Result, error) {
	if username == "" || password == "" {
		return Result{}, nil
	}

	user, err := b.users.FindByUsername(username)
	if err != nil {
		return Result{}, err
	}

	if user == nil || user.AuthSource != models.AuthSourceLocal {
		return Result{}, nil
	}

	if !user.Active {
		log.Debug().Str("username", username).Msg("local user account is disabled")

		return Result{}, nil
	}

	if !user.VerifyPassword(password) {
		log.Debug().Str("username", username).Msg("local password does not match")

		return Result{}, nil
	}

	now := time.Now()
	user.LastLogin = &now

	if err = b.users.Update(user); err != nil {
		return Result{}, err
	}

	return accepted(user), nil
}

// CreateUser adds an active local user.
func (b *LocalBackend) CreateUser(username, email, password, firstName, lastName string, superuser bool) (*models.User, error) {
	if password == "" {
		return nil, ErrPasswordEmpty
	}

	existing, err := b.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrUserNameExists
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Active:      true,
		Username:    username,
		Email:       email,
		Password:    hash,
		FirstName:   firstName,
		LastName:    lastName,
		IsStaff:     superuser,
		IsSuperuser: superuser,
		AuthSource:  models.AuthSourceLocal,
	}

	if err = b.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
