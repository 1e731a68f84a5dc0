// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for notes.
//
// Usage:
//
//	go run . [flags]
//	./notes [flags]
//
// Without a subcommand the terminal UI starts. See --help for options.
package main

import (
	"os"

	log "github.com/charmbracelet/log"
	"github.com/rymate/notes/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Errorf("notes: %v", err)
		os.Exit(1)
	}
}
