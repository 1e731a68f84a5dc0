// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// BackupData is the top-level structure written by a backup and read back by a
// restore. It holds every row of the notes and categories tables.
type BackupData struct {
	// SchemaVersion is the number of migrations applied to the exporting store.
	// A restore refuses data written by a newer schema.
	SchemaVersion int `json:"schema_version"`

	Notes      []Note     `json:"notes"`
	Categories []Category `json:"categories"`
}
