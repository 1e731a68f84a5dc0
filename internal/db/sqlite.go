// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// isMemoryDSN reports whether dsn names an in-memory SQLite database.
func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// isPrivateMemoryDSN reports whether dsn names an in-memory database that is
// not shared between connections.
func isPrivateMemoryDSN(dsn string) bool {
	return isMemoryDSN(dsn) && !strings.Contains(dsn, "cache=shared")
}

// sqliteFilePath extracts the file path from a SQLite DSN, stripping the
// optional "file:" scheme and query parameters.
func sqliteFilePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// prepareSQLiteDSN creates the parent directory of a file-backed database so
// first use on a fresh machine works.
func prepareSQLiteDSN(dsn string) (string, error) {
	if strings.TrimSpace(dsn) == "" {
		return "", fmt.Errorf("empty sqlite dsn")
	}
	if isMemoryDSN(dsn) {
		return dsn, nil
	}
	if dir := filepath.Dir(sqliteFilePath(dsn)); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}
	return dsn, nil
}
