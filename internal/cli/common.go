package cli

import (
	"fmt"

	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/database"
	"github.com/evops/catalog/internal/logger"
)

// openDatabase connects using the environment configuration, letting a -db
// flag override the sqlite path.
func openDatabase(dbPath string) (*database.Database, *logger.Logger, error) {
	cfg := config.NewConfig()
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}
