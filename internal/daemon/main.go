// Package daemon wires the database, the session storage, the auth chain and the web service.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authgw/authgw/internal/auth"
	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db"
	"github.com/authgw/authgw/internal/db/repository"
	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/identity"
	"github.com/authgw/authgw/internal/policy"
	"github.com/authgw/authgw/internal/web"
	"github.com/authgw/authgw/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting authgw")

	err := d.webService.Start(addr)

	if errClose := d.storage.Close(); errClose != nil {
		log.Warn().Err(errClose).Msg("failed to close session storage")
	}

	return err
}

// New opens the database, seeds the allowlisted groups and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	gormDB, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, gormDB); err != nil {
		return nil, err
	}

	// Initialize fiber session store
	storage, err := session.NewStorage(cfg.Session, cfg.DB)
	if err != nil {
		return nil, err
	}

	session.Init(storage, cfg.Session.ExpiryTime)

	webService, err := web.New(cfg, NewChain(cfg, gormDB))
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         gormDB,
		storage:    storage,
		webService: webService,
	}, nil
}

// NewChain builds the enabled backends in the order local, directory.
func NewChain(cfg *config.Config, gormDB *gorm.DB) *auth.Chain {
	users := repository.NewUsers(gormDB)

	var backends []auth.Backend

	if cfg.Auth.LocalDB {
		backends = append(backends, auth.NewLocalBackend(users))
	}

	if cfg.Auth.Directory {
		syncService := identity.NewService(users, policy.New(policy.WithSuperuserGroup(cfg.Directory.SuperuserGroup)))

		backends = append(backends, auth.NewDirectoryBackend(
			cfg.Directory.Settings,
			cfg.Directory.Allowlist,
			directory.NewResolver(),
			syncService,
		))
	}

	return auth.NewChain(backends...)
}
