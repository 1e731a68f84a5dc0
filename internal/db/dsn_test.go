// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uptrace/bun/dialect"
	_ "modernc.org/sqlite"
)

func TestCreateBunDB_VariousDialects(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	cases := map[string]dialect.Name{"sqlite": dialect.SQLite, "postgres": dialect.PG, "mysql": dialect.MySQL, "unknown": dialect.SQLite}
	for dbType, want := range cases {
		b := createBunDB(sqlDB, dbType)
		if b == nil {
			t.Fatalf("createBunDB returned nil for dialect %s", dbType)
		}
		if got := b.Dialect().Name(); got != want {
			t.Fatalf("createBunDB(%s) dialect = %v, want %v", dbType, got, want)
		}
	}
}

func TestPrepareSQLiteDSN_CreatesParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	dsn := filepath.Join(dir, "notes.db")
	got, err := prepareSQLiteDSN(dsn)
	if err != nil {
		t.Fatalf("prepareSQLiteDSN failed: %v", err)
	}
	if got != dsn {
		t.Fatalf("dsn rewritten to %q", got)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("expected directory %s to exist: %v", dir, err)
	}

	s, err := NewStoreFromDSN("sqlite", "file:"+dsn+"?cache=private")
	if err != nil {
		t.Fatalf("NewStoreFromDSN on file dsn failed: %v", err)
	}
	_ = s.Close()
	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestPrepareSQLiteDSN_MemoryAndEmpty(t *testing.T) {
	for _, dsn := range []string{":memory:", "file::memory:?cache=shared", "file:x?mode=memory&cache=shared"} {
		if got, err := prepareSQLiteDSN(dsn); err != nil || got != dsn {
			t.Fatalf("prepareSQLiteDSN(%q) = %q, %v", dsn, got, err)
		}
	}
	if _, err := prepareSQLiteDSN("  "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestPrepareMySQLDSN_SetsOptions(t *testing.T) {
	got, err := prepareMySQLDSN("user:pw@tcp(localhost:3306)/notes")
	if err != nil {
		t.Fatalf("prepareMySQLDSN failed: %v", err)
	}
	for _, want := range []string{"parseTime=true", "clientFoundRows=true", "/notes"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if _, err := prepareMySQLDSN("not a dsn"); err == nil {
		t.Fatalf("expected error for malformed mysql dsn")
	}
}

func TestPreparePostgresDSN(t *testing.T) {
	if _, err := preparePostgresDSN("postgres://u:p@localhost:5432/notes?sslmode=disable"); err != nil {
		t.Fatalf("valid URL rejected: %v", err)
	}
	if _, err := preparePostgresDSN("postgres://u:p@localhost:notaport/notes"); err == nil {
		t.Fatalf("expected error for invalid port")
	}
}

func TestDriverNameFor(t *testing.T) {
	if driverNameFor("postgres") != "pgx" || driverNameFor("sqlite") != "sqlite" || driverNameFor("mysql") != "mysql" {
		t.Fatalf("unexpected driver mapping")
	}
}
