package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/evops/catalog/internal/config"
	"github.com/evops/catalog/internal/entities"
	"github.com/evops/catalog/internal/logger"
)

// sqliteParams turn on foreign keys and make every transaction take the
// write lock at BEGIN, which serializes read-then-write sequences such as
// image position allocation.
const sqliteParams = "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"

// sqliteDriverName is go-sqlite3 with a casefold(text) function that
// lowercases the full Unicode range. The built-in LOWER only folds ASCII.
const sqliteDriverName = "sqlite3_catalog"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
}

type Database struct {
	DB  *gorm.DB
	log *logger.Logger
}

func NewDatabase(cfg config.Database, log *logger.Logger) (*Database, error) {
	dbLog := log.With("service", "Database", "driver", string(cfg.Driver))

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DatabaseDriverSQLite, "":
		dialector = sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        sqliteDSN(cfg.Path),
		})
	case config.DatabaseDriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_DSN")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormLog := gormLogger.New(
		zap.NewStdLog(log.SugaredLogger.Desugar()),
		gormLogger.Config{
			SlowThreshold:             cfg.SlowQueryThreshold,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	database := &Database{DB: db, log: dbLog}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}

	dbLog.Info("Database initialized")
	return database, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = config.DefaultDatabasePath
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + sqliteParams
}

// CaseFold wraps a SQL text expression so that it lowercases the same way
// strings.ToLower does.
func (d *Database) CaseFold(expr string) string {
	if d.DB.Dialector.Name() == "sqlite" {
		return "casefold(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// Migrate creates or updates every catalog table.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(entities.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transact runs fn inside a single transaction bound to ctx. Any error
// returned by fn rolls the transaction back and is returned unchanged, and
// a cancelled ctx rolls back whatever fn managed to write.
func (d *Database) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}
