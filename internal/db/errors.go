// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrNotInitialized is returned by package helpers used before InitDB.
var ErrNotInitialized = errors.New("database not initialized")

// ErrSchemaTooNew is returned when importing a backup written by a newer schema.
var ErrSchemaTooNew = errors.New("backup schema is newer than the database schema")

// MapDBError inspects low-level driver errors and maps common constraint
// violations to package-level sentinel errors (like ErrDuplicate). The mapping
// is string based so this file does not depend on any driver package.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry, Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
