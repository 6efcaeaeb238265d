package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"quizcraft/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies every pending up migration for the given driver.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) error {
	return run(ctx, db, driver, true)
}

// RollbackMigrations applies every down migration.
func RollbackMigrations(ctx context.Context, db *sqlx.DB, driver string) error {
	return run(ctx, db, driver, false)
}

func run(ctx context.Context, db *sqlx.DB, driver string, up bool) error {
	l := logger.Get()

	driverName, err := DriverName(driver)
	if err != nil {
		return err
	}
	if driverName == "oracle" {
		return runOracle(ctx, db, up)
	}

	var (
		dir      string
		dbDriver migratedb.Driver
		name     string
	)
	switch driverName {
	case "sqlite":
		dir, name = "migrations/sqlite", "sqlite"
		dbDriver, err = sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	case "pgx":
		dir, name = "migrations/postgres", "pgx5"
		dbDriver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}

	// m.Close would also close db, which the caller still owns.
	m, err := migrate.NewWithInstance("iofs", src, name, dbDriver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	l.Info("Migrations completed", zap.String("driver", driverName), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// runOracle executes the Oracle scripts statement by statement.
// golang-migrate ships no Oracle driver, so the schema state is read from user_tables.
func runOracle(ctx context.Context, db *sqlx.DB, up bool) error {
	l := logger.Get()

	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'QUIZZES'`); err != nil {
		return fmt.Errorf("could not inspect schema: %w", err)
	}

	suffix := ".up.sql"
	if !up {
		suffix = ".down.sql"
	}
	if up == (count > 0) {
		l.Info("Oracle schema already at target state", zap.Bool("up", up))
		return nil
	}

	files, err := fs.ReadDir(migrationsFS, "migrations/oracle")
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), suffix) {
			continue
		}
		content, err := fs.ReadFile(migrationsFS, "migrations/oracle/"+file.Name())
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
			}
		}
		l.Info("Executed migration", zap.String("file", file.Name()))
	}
	return nil
}

// SplitStatements splits a script on ';' and drops empty statements.
// Oracle rejects a trailing semicolon in a single Exec.
func SplitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
