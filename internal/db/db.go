// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for notes.
// It abstracts the underlying database (SQLite, PostgreSQL or MySQL) behind
// the Store interface so the rest of the application never touches SQL.
package db // import "github.com/rymate/notes/internal/db"

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rymate/notes/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// SQL drivers for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// package-level variables
var (
	store Store
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// InitDB opens the store for the given type and DSN, runs pending migrations
// and sets it as the package default.
func InitDB(dbType, dsn string) error {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	store = s
	return nil
}

// IsInitialized reports whether the package-level store has been set.
func IsInitialized() bool {
	return store != nil
}

// DefaultStore returns the package-level store, or nil before InitDB/New.
func DefaultStore() Store {
	return store
}

// driverNameFor maps a database type to the registered database/sql driver.
// The pgx stdlib registers driver name "pgx".
func driverNameFor(dbType string) string {
	if dbType == "postgres" {
		return "pgx"
	}
	return dbType
}

// prepareDSN applies backend specific DSN normalization before opening.
func prepareDSN(dbType, dsn string) (string, error) {
	switch dbType {
	case "sqlite":
		return prepareSQLiteDSN(dsn)
	case "postgres":
		return preparePostgresDSN(dsn)
	case "mysql":
		return prepareMySQLDSN(dsn)
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// NewStoreFromDSN opens a sql.DB for the given DSN, runs migrations, and
// returns a Store backed by a long-lived *bun.DB.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	openDSN, err := prepareDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	driverName := driverNameFor(dbType)
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, openDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pool defaults can be overridden via environment variables.
	const (
		defaultMaxOpenConns    = 25
		defaultMaxIdleConns    = 25
		defaultConnMaxLifetime = 5 * time.Minute
	)

	maxOpen := envInt("NOTES_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("NOTES_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)

	connMax := defaultConnMaxLifetime
	if n := envInt("NOTES_DB_CONN_MAX_LIFETIME_SECONDS", -1); n >= 0 {
		connMax = time.Duration(n) * time.Second
	}

	// A private in-memory SQLite database lives and dies with its connection.
	// Keep exactly one and never recycle it.
	if dbType == "sqlite" && isPrivateMemoryDSN(dsn) {
		maxOpen = 1
		maxIdle = 1
		connMax = 0
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMax)

	dbLogf("db: opened %s driver in %s (conn max open=%d, idle=%d, maxLifetime=%s)", driverName, time.Since(start), maxOpen, maxIdle, connMax)

	migStart := time.Now()
	if err := RunMigrations(sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: migrations for %s completed in %s", dbType, time.Since(migStart))

	return &BunStore{bun: createBunDB(sqlDB, dbType), dbType: dbType}, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		// Callers validate dbType earlier; SQLite is the fallback.
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// placeholder returns the n-th (1-based) bind parameter for dbType.
func placeholder(dbType string, n int) string {
	if dbType == "postgres" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// RunMigrations applies the pending embedded migrations for dbType. Each
// migration runs in its own transaction together with its ledger row.
func RunMigrations(db *sql.DB, dbType string) error {
	start := time.Now()
	dbLogf("db: starting migrations for %s", dbType)
	migrationsPath := fmt.Sprintf("migrations/%s", dbType)

	entries, err := fs.ReadDir(embeddedMigrations, migrationsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no migrations for database type '%s'", dbType)
		}
		return fmt.Errorf("failed to read embedded migrations (%s): %w", migrationsPath, err)
	}

	var ups []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); strings.HasSuffix(name, ".up.sql") {
			ups = append(ups, name)
		}
	}
	sort.Strings(ups)

	// A notes table that predates the ledger belongs to an older release.
	legacy, err := tableExists(db, dbType, "notes")
	if err != nil {
		return fmt.Errorf("failed to inspect existing schema: %w", err)
	}

	if err := ensureSchemaMigrationsTable(db, dbType); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	var applied int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		return fmt.Errorf("failed to count applied migrations: %w", err)
	}
	upgrading := legacy || applied > 0

	checkQuery := "SELECT 1 FROM schema_migrations WHERE version = " + placeholder(dbType, 1)
	insertQuery := fmt.Sprintf("INSERT INTO schema_migrations(version, applied_at) VALUES(%s, %s)", placeholder(dbType, 1), placeholder(dbType, 2))

	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")

		var exists int
		err := db.QueryRow(checkQuery, version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}

		p := path.Join(migrationsPath, fname)
		data, err := embeddedMigrations.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", p, err)
		}

		if upgrading {
			warnf("db: upgrading existing schema, applying migration %s", version)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to execute migration %s: %w", version, err)
			}
		}
		if _, err := tx.Exec(insertQuery, version, time.Now().UTC()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", version, err)
		}
	}

	dbLogf("db: applied migrations for %s in %s", dbType, time.Since(start))
	return nil
}

// splitStatements splits a migration file into single statements. A statement
// ends at a line whose last non-blank character is ';'. Lines starting with
// "--" are comments.
func splitStatements(script string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		s := strings.TrimSpace(cur.String())
		s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
		if s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()
	return out
}

// tableExists reports whether a table with the given name is present.
func tableExists(db *sql.DB, dbType, table string) (bool, error) {
	var query string
	switch dbType {
	case "sqlite":
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	case "postgres":
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
	case "mysql":
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	default:
		return false, fmt.Errorf("unsupported database type: '%s'", dbType)
	}
	var n int
	if err := db.QueryRow(query, table).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ensureSchemaMigrationsTable creates schema_migrations if missing.
func ensureSchemaMigrationsTable(db *sql.DB, dbType string) error {
	// MySQL cannot index TEXT columns without a length.
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	if dbType == "mysql" {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP NULL)`
	}
	_, err := db.Exec(ddl)
	return err
}

// appliedMigrationsBun lists applied migration versions in order.
func appliedMigrationsBun(ctx context.Context, bdb bun.IDB) ([]string, error) {
	var versions []string
	if err := QueryRawInto(ctx, bdb, &versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, err
	}
	return versions, nil
}

// ExportDataForBackup retrieves all data from the default store for a backup.
func ExportDataForBackup(ctx context.Context) (*model.BackupData, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.ExportData(ctx)
}

// ImportDataFromBackup replaces the default store's contents with backup.
func ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	if store == nil {
		return ErrNotInitialized
	}
	return store.ImportData(ctx, backup)
}

// IntegrateDataFromBackup merges backup into the default store without
// touching existing rows.
func IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	if store == nil {
		return ErrNotInitialized
	}
	return store.IntegrateData(ctx, backup)
}
