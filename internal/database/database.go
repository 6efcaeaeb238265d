package database

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

func init() {
	// go-ora takes :name placeholders; sqlx has no default bind type for it.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// DriverName maps a configured database kind to its database/sql driver name.
func DriverName(driver string) (string, error) {
	switch driver {
	case "", DriverSQLite, "sqlite3":
		return "sqlite", nil
	case DriverPostgres, "pg", "pgx":
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	driverName, err := DriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}

	tunePool(driverName, db)

	if driverName == "sqlite" {
		if err := applySQLitePragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	logger.Get().Info("Connected to database", zap.String("driver", driverName))
	return db, nil
}

func tunePool(driverName string, db *sqlx.DB) {
	switch driverName {
	case "sqlite":
		// single writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(45 * time.Minute)
		db.SetConnMaxIdleTime(15 * time.Minute)
	}
}

func applySQLitePragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}
