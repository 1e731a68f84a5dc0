// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/rymate/notes/internal/model"
	"github.com/uptrace/bun"
)

// ExportDataBun exports both tables into a model.BackupData using a Bun transaction.
func ExportDataBun(ctx context.Context, bdb *bun.DB) (*model.BackupData, error) {
	var backup *model.BackupData
	err := WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		version, err := SchemaVersionBun(ctx, tx)
		if err != nil {
			return err
		}
		notes, err := FetchAllNotesBun(ctx, tx)
		if err != nil {
			return err
		}
		cats, err := FetchCategoriesBun(ctx, tx)
		if err != nil {
			return err
		}
		backup = &model.BackupData{SchemaVersion: version, Notes: notes, Categories: cats}
		return nil
	})
	return backup, err
}

// ImportDataBun performs a full wipe-and-replace using a Bun transaction.
// A backup without categories gets the two default ones.
func ImportDataBun(ctx context.Context, bdb *bun.DB, dbType string, backup *model.BackupData) error {
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, t := range []string{"notes", "categories"} {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM ?", bun.Ident(t)); err != nil {
				return err
			}
		}

		cats := backup.Categories
		if len(cats) == 0 {
			cats = []model.Category{
				{ID: model.AllNotesCategoryID, Title: model.AllNotesTitle},
				{ID: model.AllNotesCategoryID + 1, Title: model.UncategorisedTitle},
			}
		}
		for _, c := range cats {
			if err := insertCategoryWithID(ctx, tx, c); err != nil {
				return err
			}
		}
		for _, n := range backup.Notes {
			if err := insertNoteWithID(ctx, tx, n); err != nil {
				return err
			}
		}
		return resetSequences(ctx, tx, dbType)
	})
}

// IntegrateDataBun performs a non-destructive restore: rows whose id already
// exists are left untouched.
func IntegrateDataBun(ctx context.Context, bdb *bun.DB, dbType string, backup *model.BackupData) error {
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		var catIDs []int64
		if err := QueryRawInto(ctx, tx, &catIDs, "SELECT id FROM categories"); err != nil {
			return err
		}
		existingCats := idSet(catIDs)
		for _, c := range backup.Categories {
			if existingCats[c.ID] {
				continue
			}
			if err := insertCategoryWithID(ctx, tx, c); err != nil {
				return err
			}
		}

		var noteIDs []int64
		if err := QueryRawInto(ctx, tx, &noteIDs, "SELECT id FROM notes"); err != nil {
			return err
		}
		existingNotes := idSet(noteIDs)
		for _, n := range backup.Notes {
			if existingNotes[n.ID] {
				continue
			}
			if err := insertNoteWithID(ctx, tx, n); err != nil {
				return err
			}
		}
		return resetSequences(ctx, tx, dbType)
	})
}

func idSet(ids []int64) map[int64]bool {
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func insertNoteWithID(ctx context.Context, tx bun.Tx, n model.Note) error {
	_, err := ExecRaw(ctx, tx, "INSERT INTO notes (id, title, body, category_id) VALUES (?, ?, ?, ?)", n.ID, n.Title, n.Body, n.CategoryID)
	return MapDBError(err)
}

func insertCategoryWithID(ctx context.Context, tx bun.Tx, c model.Category) error {
	_, err := ExecRaw(ctx, tx, "INSERT INTO categories (id, title) VALUES (?, ?)", c.ID, c.Title)
	return MapDBError(err)
}

// resetSequences realigns Postgres id sequences after explicit-id inserts.
// SQLite and MySQL advance their counters on their own.
func resetSequences(ctx context.Context, tx bun.Tx, dbType string) error {
	if dbType != "postgres" {
		return nil
	}
	for _, q := range postgresSequenceResets {
		if _, err := ExecRaw(ctx, tx, q); err != nil {
			return err
		}
	}
	return nil
}
