// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/rymate/notes/internal/model"
	"github.com/uptrace/bun"
)

// Store defines every database operation the application performs.
// All calls are synchronous and use a single statement unless noted.
type Store interface {
	// Note methods
	CreateNote(ctx context.Context, title, body string, categoryID int64) (int64, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
	FetchAllNotes(ctx context.Context) ([]model.Note, error)
	FetchNotesByCategory(ctx context.Context, categoryID int64) ([]model.Note, error)
	FetchNote(ctx context.Context, id int64) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, title, body string, categoryID int64) (bool, error)
	CountNotes(ctx context.Context) (int, error)

	// Category methods
	AddCategory(ctx context.Context, title string) (int64, error)
	FetchCategories(ctx context.Context) ([]model.Category, error)
	FetchCategoriesExcludingFirst(ctx context.Context) ([]model.Category, error)

	// Schema methods
	SchemaVersion(ctx context.Context) (int, error)
	AppliedMigrations(ctx context.Context) ([]string, error)

	// Backup methods. ImportData and IntegrateData run in one transaction.
	ExportData(ctx context.Context) (*model.BackupData, error)
	ImportData(ctx context.Context, backup *model.BackupData) error
	IntegrateData(ctx context.Context, backup *model.BackupData) error

	DBType() string
	BunDB() *bun.DB
	Close() error
}
