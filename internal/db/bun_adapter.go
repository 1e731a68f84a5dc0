// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rymate/notes/internal/model"
	"github.com/uptrace/bun"
)

// NoteModel maps the `notes` table for Bun queries.
type NoteModel struct {
	bun.BaseModel `bun:"table:notes"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Title         string `bun:"title,notnull"`
	Body          string `bun:"body,notnull"`
	CategoryID    int64  `bun:"category_id,notnull"`
}

// CategoryModel maps the `categories` table.
type CategoryModel struct {
	bun.BaseModel `bun:"table:categories"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Title         string `bun:"title,notnull"`
}

// --- Mapping helpers ---
func noteModelToModel(n NoteModel) model.Note {
	return model.Note{ID: n.ID, Title: n.Title, Body: n.Body, CategoryID: n.CategoryID}
}

func categoryModelToModel(c CategoryModel) model.Category {
	return model.Category{ID: c.ID, Title: c.Title}
}

func notesToModel(nms []NoteModel) []model.Note {
	out := make([]model.Note, 0, len(nms))
	for _, n := range nms {
		out = append(out, noteModelToModel(n))
	}
	return out
}

func categoriesToModel(cms []CategoryModel) []model.Category {
	out := make([]model.Category, 0, len(cms))
	for _, c := range cms {
		out = append(out, categoryModelToModel(c))
	}
	return out
}

// insertedID returns the id bun scanned back via RETURNING, falling back to
// LastInsertId for dialects without RETURNING support.
func insertedID(scanned int64, res sql.Result) (int64, error) {
	if scanned != 0 {
		return scanned, nil
	}
	return res.LastInsertId()
}

// --- Note helpers ---

// CreateNoteBun inserts a note and returns its id.
func CreateNoteBun(ctx context.Context, bdb bun.IDB, title, body string, categoryID int64) (int64, error) {
	nm := &NoteModel{Title: title, Body: body, CategoryID: categoryID}
	res, err := bdb.NewInsert().Model(nm).Returning("id").Exec(ctx)
	if err != nil {
		return model.InvalidID, MapDBError(err)
	}
	id, err := insertedID(nm.ID, res)
	if err != nil {
		return model.InvalidID, err
	}
	return id, nil
}

// DeleteNoteBun removes a note by id and reports whether exactly one row went away.
func DeleteNoteBun(ctx context.Context, bdb bun.IDB, id int64) (bool, error) {
	res, err := bdb.NewDelete().Model((*NoteModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FetchAllNotesBun returns every note in insertion order.
func FetchAllNotesBun(ctx context.Context, bdb bun.IDB) ([]model.Note, error) {
	var nms []NoteModel
	if err := bdb.NewSelect().Model(&nms).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return notesToModel(nms), nil
}

// FetchNotesByCategoryBun returns the notes whose stored category equals categoryID.
func FetchNotesByCategoryBun(ctx context.Context, bdb bun.IDB, categoryID int64) ([]model.Note, error) {
	var nms []NoteModel
	if err := bdb.NewSelect().Model(&nms).Where("category_id = ?", categoryID).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return notesToModel(nms), nil
}

// FetchNoteBun returns a single note or ErrNotFound.
func FetchNoteBun(ctx context.Context, bdb bun.IDB, id int64) (*model.Note, error) {
	var nm NoteModel
	err := bdb.NewSelect().Model(&nm).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	n := noteModelToModel(nm)
	return &n, nil
}

// UpdateNoteBun rewrites title, body and category of a note.
func UpdateNoteBun(ctx context.Context, bdb bun.IDB, id int64, title, body string, categoryID int64) (bool, error) {
	nm := &NoteModel{ID: id, Title: title, Body: body, CategoryID: categoryID}
	res, err := bdb.NewUpdate().Model(nm).Column("title", "body", "category_id").WherePK().Exec(ctx)
	if err != nil {
		return false, MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountNotesBun returns the number of stored notes.
func CountNotesBun(ctx context.Context, bdb bun.IDB) (int, error) {
	return bdb.NewSelect().Model((*NoteModel)(nil)).Count(ctx)
}

// --- Category helpers ---

// AddCategoryBun inserts a category and returns its id.
func AddCategoryBun(ctx context.Context, bdb bun.IDB, title string) (int64, error) {
	cm := &CategoryModel{Title: title}
	res, err := bdb.NewInsert().Model(cm).Returning("id").Exec(ctx)
	if err != nil {
		return model.InvalidID, MapDBError(err)
	}
	id, err := insertedID(cm.ID, res)
	if err != nil {
		return model.InvalidID, err
	}
	return id, nil
}

// FetchCategoriesBun returns all categories in id order.
func FetchCategoriesBun(ctx context.Context, bdb bun.IDB) ([]model.Category, error) {
	var cms []CategoryModel
	if err := bdb.NewSelect().Model(&cms).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return categoriesToModel(cms), nil
}

// FetchCategoriesExcludingFirstBun returns every category except the
// "All Notes" pseudo category.
func FetchCategoriesExcludingFirstBun(ctx context.Context, bdb bun.IDB) ([]model.Category, error) {
	var cms []CategoryModel
	if err := bdb.NewSelect().Model(&cms).Where("id <> ?", model.AllNotesCategoryID).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return categoriesToModel(cms), nil
}

// SchemaVersionBun returns the number of applied migrations.
func SchemaVersionBun(ctx context.Context, bdb bun.IDB) (int, error) {
	var n int
	if err := QueryRawInto(ctx, bdb, &n, "SELECT COUNT(*) FROM schema_migrations"); err != nil {
		return 0, err
	}
	return n, nil
}
