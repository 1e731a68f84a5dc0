// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for notes using Cobra.
// It wires configuration, localization and the default store, then delegates
// to the db, editor, render and backup packages. Running without a
// subcommand starts the terminal UI.
package cli
