// Package dsn builds database connection strings from the configuration.
package dsn

import (
	"fmt"
	"strings"

	"github.com/authgw/authgw/internal/config"
)

// Create builds the mysql DSN, e.g. user:pw@tcp(host:3306)/name?parseTime=True.
func Create(cfg *config.Config) string {
	return MySQL(cfg.DB)
}

// MySQL builds the go-sql-driver DSN.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a key=value DSN. Extras may hold further pairs such as sslmode=disable,
// in either space or ampersand separated form.
func Postgres(db config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
	}

	if db.Extras != "" {
		parts = append(parts, strings.Fields(strings.ReplaceAll(db.Extras, "&", " "))...)
	}

	return strings.Join(parts, " ")
}

// SQLite returns the database file path, in memory when empty.
func SQLite(db config.DB) string {
	if db.Path == "" {
		return ":memory:"
	}

	return db.Path
}
