// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains the data-access layer for notes and categories.
//
// Store is the only type the rest of the application talks to. BunStore
// implements it for SQLite, PostgreSQL and MySQL through bun dialects; the
// low-level queries live in bun_adapter.go as small helpers taking a
// bun.IDB so they run unchanged inside a transaction.
//
// Schema
//   - Migrations are embedded per dialect under migrations/<type>/ and applied
//     in file name order. Applied versions are recorded in schema_migrations;
//     the schema version is the number of applied migrations.
//   - Category seeding is idempotent, so re-running migrations or upgrading a
//     store from an older release never duplicates the seeded rows.
//
// Testing notes
//   - Prefer WithTestStore (named shared in-memory SQLite) in tests that need
//     real DB semantics and migrations.
package db
