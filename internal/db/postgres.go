// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// preparePostgresDSN validates a PostgreSQL connection string (URL or
// key/value form) before it is handed to the pgx stdlib driver.
func preparePostgresDSN(dsn string) (string, error) {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("invalid postgres dsn: %w", err)
	}
	return dsn, nil
}

// postgresSequenceResets move the id sequences past the highest stored id
// after rows were inserted with explicit ids.
var postgresSequenceResets = []string{
	"SELECT setval(pg_get_serial_sequence('notes', 'id'), COALESCE((SELECT MAX(id) FROM notes), 0) + 1, false)",
	"SELECT setval(pg_get_serial_sequence('categories', 'id'), COALESCE((SELECT MAX(id) FROM categories), 0) + 1, false)",
}
