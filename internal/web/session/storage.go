package session

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db/dsn"
)

// NewStorage builds the storage selected by cfg.Backend. The sql backends reuse the
// connection settings of the user database.
func NewStorage(cfg config.Session, db config.DB) (fiber.Storage, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", config.SessionMemory:
		// the fiber session store falls back to its in-memory storage
		return fibersession.New(fibersession.Config{Expiration: cfg.ExpiryTime}).Storage, nil
	case config.SessionMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.MySQL(db),
			Table:         cfg.Table,
		}), nil
	case config.SessionPostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Postgres(db),
			Table:         cfg.Table,
		}), nil
	case config.SessionRedis:
		return NewRedisStorage(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSessionBackend, cfg.Backend)
	}
}
