// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rymate/notes/internal/backup"
	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/i18n"
	"github.com/spf13/cobra"
)

// backupFileName returns the output file for a backup. A missing name becomes
// a dated default and ".zst" is appended when absent.
func backupFileName(args []string, now time.Time) string {
	if len(args) == 0 || args[0] == "" {
		return fmt.Sprintf("notes-backup-%s.json.zst", now.Format("2006-01-02"))
	}
	name := args[0]
	if !strings.HasSuffix(name, ".zst") {
		name += ".zst"
	}
	return name
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of all notes and categories",
		Long: `Dumps every note and category into a single Zstandard-compressed JSON file.

If no output file is given, 'notes-backup-YYYY-MM-DD.json.zst' is used.
'.zst' is appended to the name if it is not already present.

Examples:
  notes backup
  notes backup my-backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := currentStore()
			if err != nil {
				return err
			}
			outputFile := backupFileName(args, time.Now())
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("could not create %s: %w", outputFile, err)
			}
			data, err := backup.Backup(cmd.Context(), st, f)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(outputFile)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_written", outputFile, len(data.Notes), len(data.Categories)))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: "Restore notes and categories from a compressed JSON backup",
		Long: `Restores data from a Zstandard-compressed JSON backup file.
By default only rows whose ids do not exist yet are added.

--full WIPES all existing notes and categories before importing.

Examples:
  notes restore ./notes-backup-2026-10-17.json.zst
  notes restore --full ./notes-backup-2026-10-17.json.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := currentStore()
			if err != nil {
				return err
			}
			full, _ := cmd.Flags().GetBool("full")
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("could not open backup: %w", err)
			}
			defer func() { _ = f.Close() }()

			data, err := backup.Restore(cmd.Context(), f, full, st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_done", len(data.Notes), len(data.Categories)))
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Perform a full, destructive restore (wipes all existing data first)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate --target-type <db-type> --target-dsn <dsn>",
		Short: "Copy all data from the configured database into another one",
		Long: `Exports all data from the configured database, opens the target database,
applies the schema migrations there and performs a full restore into it.

Example:
  notes migrate --target-type postgres --target-dsn "postgres://notes@localhost/notes"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := currentStore()
			if err != nil {
				return err
			}
			targetType, _ := cmd.Flags().GetString("target-type")
			targetDSN, _ := cmd.Flags().GetString("target-dsn")
			if err := backup.Migrate(cmd.Context(), st, db.NewStoreFromDSN, targetType, targetDSN); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.migrate_done", targetType))
			return nil
		},
	}
	cmd.Flags().String("target-type", "", `Target database type ("sqlite", "postgres", "mysql")`)
	cmd.Flags().String("target-dsn", "", "Target database DSN")
	_ = cmd.MarkFlagRequired("target-type")
	_ = cmd.MarkFlagRequired("target-dsn")
	return cmd
}
