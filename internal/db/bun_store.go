// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/rymate/notes/internal/model"
	"github.com/uptrace/bun"
)

// BunStore is the bun-backed implementation of Store used for every
// supported backend.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

// CreateNote inserts a note. On failure it returns model.InvalidID and the error.
func (s *BunStore) CreateNote(ctx context.Context, title, body string, categoryID int64) (int64, error) {
	id, err := CreateNoteBun(ctx, s.bun, title, body, categoryID)
	if err != nil {
		return model.InvalidID, fmt.Errorf("create note: %w", err)
	}
	dbLogf("db: created note %d in category %d", id, categoryID)
	return id, nil
}

// DeleteNote removes a note. Deleting a missing id returns false and no error.
func (s *BunStore) DeleteNote(ctx context.Context, id int64) (bool, error) {
	ok, err := DeleteNoteBun(ctx, s.bun, id)
	if err != nil {
		return false, fmt.Errorf("delete note %d: %w", id, err)
	}
	return ok, nil
}

// FetchAllNotes returns every note in insertion order.
func (s *BunStore) FetchAllNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := FetchAllNotesBun(ctx, s.bun)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	return notes, nil
}

// FetchNotesByCategory returns exactly the notes stored with categoryID.
func (s *BunStore) FetchNotesByCategory(ctx context.Context, categoryID int64) ([]model.Note, error) {
	notes, err := FetchNotesByCategoryBun(ctx, s.bun, categoryID)
	if err != nil {
		return nil, fmt.Errorf("fetch notes in category %d: %w", categoryID, err)
	}
	return notes, nil
}

// FetchNote returns the note with the given id, or an error wrapping ErrNotFound.
func (s *BunStore) FetchNote(ctx context.Context, id int64) (*model.Note, error) {
	n, err := FetchNoteBun(ctx, s.bun, id)
	if err != nil {
		return nil, fmt.Errorf("fetch note %d: %w", id, err)
	}
	return n, nil
}

// UpdateNote replaces title, body and category. It reports whether a row matched.
func (s *BunStore) UpdateNote(ctx context.Context, id int64, title, body string, categoryID int64) (bool, error) {
	ok, err := UpdateNoteBun(ctx, s.bun, id, title, body, categoryID)
	if err != nil {
		return false, fmt.Errorf("update note %d: %w", id, err)
	}
	return ok, nil
}

// CountNotes returns the number of stored notes.
func (s *BunStore) CountNotes(ctx context.Context) (int, error) {
	n, err := CountNotesBun(ctx, s.bun)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

// AddCategory inserts a category. On failure it returns model.InvalidID and the error.
func (s *BunStore) AddCategory(ctx context.Context, title string) (int64, error) {
	id, err := AddCategoryBun(ctx, s.bun, title)
	if err != nil {
		return model.InvalidID, fmt.Errorf("add category: %w", err)
	}
	return id, nil
}

// FetchCategories returns all categories in id order.
func (s *BunStore) FetchCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := FetchCategoriesBun(ctx, s.bun)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return cats, nil
}

// FetchCategoriesExcludingFirst returns every category except "All Notes".
func (s *BunStore) FetchCategoriesExcludingFirst(ctx context.Context) ([]model.Category, error) {
	cats, err := FetchCategoriesExcludingFirstBun(ctx, s.bun)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return cats, nil
}

// SchemaVersion returns the number of applied migrations.
func (s *BunStore) SchemaVersion(ctx context.Context) (int, error) {
	v, err := SchemaVersionBun(ctx, s.bun)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}

// AppliedMigrations lists applied migration versions in order.
func (s *BunStore) AppliedMigrations(ctx context.Context) ([]string, error) {
	v, err := appliedMigrationsBun(ctx, s.bun)
	if err != nil {
		return nil, fmt.Errorf("applied migrations: %w", err)
	}
	return v, nil
}

// ExportData reads both tables for a backup.
func (s *BunStore) ExportData(ctx context.Context) (*model.BackupData, error) {
	data, err := ExportDataBun(ctx, s.bun)
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}
	return data, nil
}

// ImportData wipes both tables and loads backup in one transaction.
func (s *BunStore) ImportData(ctx context.Context, backup *model.BackupData) error {
	if err := s.checkBackupVersion(ctx, backup); err != nil {
		return err
	}
	if err := ImportDataBun(ctx, s.bun, s.dbType, backup); err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	return nil
}

// IntegrateData inserts the rows of backup whose ids are not present yet.
func (s *BunStore) IntegrateData(ctx context.Context, backup *model.BackupData) error {
	if err := s.checkBackupVersion(ctx, backup); err != nil {
		return err
	}
	if err := IntegrateDataBun(ctx, s.bun, s.dbType, backup); err != nil {
		return fmt.Errorf("integrate data: %w", err)
	}
	return nil
}

func (s *BunStore) checkBackupVersion(ctx context.Context, backup *model.BackupData) error {
	if backup == nil {
		return errors.New("backup data is nil")
	}
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if backup.SchemaVersion > current {
		return fmt.Errorf("%w: backup %d, database %d", ErrSchemaTooNew, backup.SchemaVersion, current)
	}
	return nil
}

// DBType returns the backend name ("sqlite", "postgres" or "mysql").
func (s *BunStore) DBType() string {
	return s.dbType
}

// BunDB exposes the underlying *bun.DB.
func (s *BunStore) BunDB() *bun.DB {
	return s.bun
}

// Close closes the underlying connection pool.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
