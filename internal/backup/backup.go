// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup reads and writes zstd-compressed JSON backups and moves data
// between stores.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/model"
)

// StoreFactory opens (and migrates) a store for a database type and DSN.
// db.NewStoreFromDSN satisfies it.
type StoreFactory func(dbType, dsn string) (db.Store, error)

// Write writes compressed, indented JSON backup data to w.
func Write(w io.Writer, data *model.BackupData) error {
	if data == nil {
		return errors.New("backup data is nil")
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush backup: %w", err)
	}
	return nil
}

// Read decodes a backup written by Write.
func Read(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return &data, nil
}

// Backup exports st and writes it to w.
func Backup(ctx context.Context, st db.Store, w io.Writer) (*model.BackupData, error) {
	data, err := st.ExportData(ctx)
	if err != nil {
		return nil, err
	}
	if err := Write(w, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Restore reads a backup from r into st. A full restore replaces all data;
// otherwise only rows with unknown ids are added.
func Restore(ctx context.Context, r io.Reader, full bool, st db.Store) (*model.BackupData, error) {
	data, err := Read(r)
	if err != nil {
		return nil, err
	}
	if full {
		err = st.ImportData(ctx, data)
	} else {
		err = st.IntegrateData(ctx, data)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Migrate exports src and full-imports it into a newly opened target store.
func Migrate(ctx context.Context, src db.Store, factory StoreFactory, dbType, dsn string) error {
	data, err := src.ExportData(ctx)
	if err != nil {
		return fmt.Errorf("export backup: %w", err)
	}
	target, err := factory(dbType, dsn)
	if err != nil {
		return fmt.Errorf("init target store: %w", err)
	}
	defer func() { _ = target.Close() }()
	if err := target.ImportData(ctx, data); err != nil {
		return fmt.Errorf("import to target: %w", err)
	}
	return nil
}
