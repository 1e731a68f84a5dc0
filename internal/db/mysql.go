// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// prepareMySQLDSN parses a go-sql-driver DSN and enables the options the store
// relies on. ClientFoundRows makes UPDATE report matched rather than changed
// rows, so saving an unchanged note still counts as success.
func prepareMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}
