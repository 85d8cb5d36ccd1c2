// Package session keeps the logged-in user on a server-side fiber.Storage.
// The browser only holds the opaque session id cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/authgw/authgw/internal/db/models"
)

var (
	// ErrNotInitialized is returned before Init was called.
	ErrNotInitialized = errors.New("session store is not initialized")
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found")
)

// Store is the global session store instance.
var Store *fibersession.Store

// Data represents the session data structure.
type Data struct {
	UserID      uint64    `json:"user_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	LoginAt     time.Time `json:"login_at"`
}

// NewData copies the session relevant fields of user.
func NewData(user *models.User) *Data {
	return &Data{
		UserID:      user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		LoginAt:     time.Now().UTC(),
	}
}

// Valid reports whether the data belongs to a stored user.
func (s *Data) Valid() bool {
	return s.UserID > 0
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	if Store == nil {
		return ErrNotInitialized
	}

	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	if sessionID == "" {
		return ErrNotFound
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNotFound
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session; unknown ids are ignored.
func Delete(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	if sessionID == "" {
		return nil
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage fiber.Storage, expiration time.Duration) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = fibersession.New(fibersession.Config{
		Storage:    storage,
		Expiration: expiration,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
