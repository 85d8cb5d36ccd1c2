package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthSource tells which backend a user account belongs to.
type AuthSource string

const (
	// AuthSourceLocal is an account with a password stored in this database.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceLDAP is an account created from a directory login.
	AuthSourceLDAP AuthSource = "ldap"
)

// User is a local account. Directory users get one on their first successful login.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the account may log in.
	Active bool
	// Username is unique; it is the guard against duplicate accounts on concurrent first logins.
	Username string `gorm:"unique;size:150;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255"`
	// Password is the Argon2id hash. Directory users carry a hash of an unusable random value.
	Password string `gorm:"size:255"`
	// FirstName is the given name.
	FirstName string `gorm:"size:150"`
	// LastName is the family name.
	LastName string `gorm:"size:150"`
	// IsStaff marks accounts allowed into staff areas. Always true for directory users.
	IsStaff bool `gorm:"not null;default:false"`
	// IsSuperuser marks administrators.
	IsSuperuser bool `gorm:"not null;default:false"`
	// AuthSource tells which backend owns the account.
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'local'"`
	// ExternalID is the directory DN of ldap users.
	ExternalID string `gorm:"size:512"`
	// LastLogin is the time of the last successful authentication.
	LastLogin *time.Time
	// CreatedAt is managed by GORM.
	CreatedAt time.Time
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password with the default Argon2id parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// VerifyPassword compares password against the stored hash in constant time.
func (u *User) VerifyPassword(password string) bool {
	if u.Password == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to verify password")
		return false
	}

	return match
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
