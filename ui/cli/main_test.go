// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/logging"
)

// setupTestDB initializes a named in-memory SQLite store as the default store
// and isolates config and data directories in a temp dir.
func setupTestDB(t *testing.T) db.Store {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	i18n.Init("en")
	db.ResetStoreForTests()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := "file:cli_" + name + "?mode=memory&cache=shared"
	if err := db.InitDB("sqlite", dsn); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	st := db.DefaultStore()
	t.Cleanup(func() {
		_ = st.Close()
		db.ResetStoreForTests()
		db.SetDebug(false)
		logging.SetDebug(false)
		i18n.Init("en")
	})
	return st
}

// executeCommand runs a fresh root command with args and stdin and returns
// everything written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, "", args...)
	if err != nil {
		t.Fatalf("notes %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRoot_StartsTUIWithDefaultStore(t *testing.T) {
	st := setupTestDB(t)

	var got db.Store
	prev := runTUI
	runTUI = func(s db.Store) error { got = s; return nil }
	t.Cleanup(func() { runTUI = prev })

	mustExecute(t)
	if got != st {
		t.Fatalf("TUI did not receive the default store")
	}
}

func TestRoot_ClosesStoreItOpened(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	db.ResetStoreForTests()
	t.Cleanup(func() {
		_ = closeOwnedStore()
		db.ResetStoreForTests()
	})

	var got db.Store
	prev := runTUI
	runTUI = func(s db.Store) error { got = s; return nil }
	t.Cleanup(func() { runTUI = prev })

	dsn := filepath.Join(dir, "notes.db")
	mustExecute(t, "--database.dsn", dsn)
	if got == nil {
		t.Fatalf("TUI did not receive a store")
	}
	if db.IsInitialized() {
		t.Fatalf("default store should be cleared after the command")
	}
	if _, err := got.FetchCategories(t.Context()); err == nil {
		t.Fatalf("expected the store opened by the command to be closed")
	}

	// Post-run hooks do not run for a failing command; closeOwnedStore
	// still releases the store afterwards.
	if _, err := executeCommand(t, "", "--database.dsn", dsn, "show", "42"); err == nil {
		t.Fatalf("expected missing note error")
	}
	if !db.IsInitialized() {
		t.Fatalf("store should stay open until closeOwnedStore runs")
	}
	if err := closeOwnedStore(); err != nil {
		t.Fatalf("closeOwnedStore: %v", err)
	}
	if db.IsInitialized() {
		t.Fatalf("default store should be cleared by closeOwnedStore")
	}
}

func TestRoot_KeepsStoreItDidNotOpen(t *testing.T) {
	st := setupTestDB(t)
	mustExecute(t, "list")
	if db.DefaultStore() != st {
		t.Fatalf("default store should be left in place")
	}
	if _, err := st.FetchCategories(t.Context()); err != nil {
		t.Fatalf("store opened by the caller must stay open: %v", err)
	}
}

func TestRoot_WritesDefaultConfigOnFirstRun(t *testing.T) {
	setupTestDB(t)
	mustExecute(t, "list")

	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "notes", "notes.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected default config at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "sqlite") {
		t.Fatalf("unexpected config content:\n%s", data)
	}
	if appConfig.Language != "en" || appConfig.Database.Type != "sqlite" {
		t.Fatalf("unexpected config: %+v", appConfig)
	}
}

func TestRoot_ExplicitConfigMustExist(t *testing.T) {
	setupTestDB(t)
	_, err := executeCommand(t, "", "--config", "does-not-exist.yaml", "list")
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestRoot_LanguageFlag(t *testing.T) {
	setupTestDB(t)
	out := mustExecute(t, "--language", "de", "list")
	if !strings.Contains(out, "Keine Notizen.") {
		t.Fatalf("expected German output, got %q", out)
	}
}

func TestRoot_VerboseEnablesDebug(t *testing.T) {
	setupTestDB(t)
	mustExecute(t, "-v", "list")
	if !logging.DebugEnabled() {
		t.Fatalf("expected debug logging after -v")
	}
}

func TestRoot_VersionFlag(t *testing.T) {
	setupTestDB(t)
	code := -1
	prev := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = prev })

	out := mustExecute(t, "-V", "list")
	if code != 0 {
		t.Fatalf("expected exit(0), got %d", code)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected version output")
	}
}

func TestVersionCommand(t *testing.T) {
	// No database is needed.
	db.ResetStoreForTests()
	out := mustExecute(t, "version")
	if !strings.Contains(out, "version: ") || !strings.Contains(out, "commit: ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestParseNoteID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseNoteID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseNoteID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseNoteID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
