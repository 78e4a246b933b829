package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"   // Embedded file database (default)
	DatabaseDriverPostgres DatabaseDriver = "postgres" // External PostgreSQL server
)

type (
	Config struct {
		Database
		Log
		Auth
		Listing
	}

	Database struct {
		Driver             DatabaseDriver
		Path               string // sqlite file path
		DSN                string // postgres connection string
		MaxOpenConns       int
		SlowQueryThreshold time.Duration
	}
	Log struct {
		Mode string // "dev" or "prod"
	}
	Auth struct {
		BcryptCost int
	}
	Listing struct {
		DefaultLimit int // Page size used when the caller gives none
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("database_slow_query_threshold", "1s")

	v.SetDefault("log_mode", "dev")

	v.SetDefault("auth_bcrypt_cost", 12) // bcrypt cost factor

	v.SetDefault("list_default_limit", DefaultListLimit)

	return &Config{
		Database: Database{
			Driver:             DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:               v.GetString("DATABASE_PATH"),
			DSN:                v.GetString("DATABASE_DSN"),
			MaxOpenConns:       v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			SlowQueryThreshold: v.GetDuration("DATABASE_SLOW_QUERY_THRESHOLD"),
		},
		Log: Log{
			Mode: v.GetString("LOG_MODE"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Listing: Listing{
			DefaultLimit: v.GetInt("LIST_DEFAULT_LIMIT"),
		},
	}
}
