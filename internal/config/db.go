package config

// DB holds the database configuration settings.
type DB struct {
	// GormEngine selects the driver: mysql, postgres or sqlite.
	GormEngine string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	// Extras is appended to the mysql DSN after '?' and to the postgres DSN as key=value pairs.
	Extras string
	// Path of the sqlite database file, ":memory:" for tests.
	Path string
}
