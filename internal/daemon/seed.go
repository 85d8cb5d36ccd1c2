package daemon

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db/repository"
)

// seed creates the local groups named in LDAP_AUTHENTICATED_GROUPS, so directory logins
// have something to join.
func seed(cfg *config.Config, db *gorm.DB) error {
	if !cfg.Auth.Directory {
		return nil
	}

	for _, name := range cfg.Directory.Allowlist() {
		_, err := repository.CreateGroup(db, name, "authenticated directory group")

		switch {
		case err == nil:
			log.Info().Str("group", name).Msg("created authenticated group")
		case errors.Is(err, repository.ErrGroupAlreadyExists):
			continue
		default:
			return fmt.Errorf("seed group %s: %w", name, err)
		}
	}

	return nil
}
