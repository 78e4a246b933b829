package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Second, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultListLimit, cfg.Listing.DefaultLimit)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://evops@localhost/evops")
	t.Setenv("DATABASE_SLOW_QUERY_THRESHOLD", "250ms")
	t.Setenv("LIST_DEFAULT_LIMIT", "50")

	cfg := NewConfig()

	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://evops@localhost/evops", cfg.Database.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, 50, cfg.Listing.DefaultLimit)
}
