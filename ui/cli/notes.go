// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rymate/notes/internal/db"
	"github.com/rymate/notes/internal/editor"
	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
	"github.com/rymate/notes/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether the delete prompt can be shown. Replaced in
// tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// readBody resolves --body and --body-file. A body file of "-" reads stdin.
// It reports whether either flag was given.
func readBody(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("body-file") {
		path, _ := cmd.Flags().GetString("body-file")
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return "", false, fmt.Errorf("read body: %w", err)
		}
		return string(data), true, nil
	}
	if cmd.Flags().Changed("body") {
		body, _ := cmd.Flags().GetString("body")
		return body, true, nil
	}
	return "", false, nil
}

// fetchNote loads note id and turns a missing row into a user-facing error.
func fetchNote(ctx context.Context, st db.Store, id int64) (*model.Note, error) {
	n, err := st.FetchNote(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errors.New(i18n.T("cli.note_missing", id))
	}
	return n, err
}

// categoryNames maps category ids to titles for display.
func categoryNames(ctx context.Context, st db.Store) (map[int64]string, error) {
	cats, err := st.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats)+1)
	names[model.UncategorizedID] = i18n.T("category.none")
	for _, c := range cats {
		names[c.ID] = c.Title
	}
	return names, nil
}

func categoryName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return i18n.T("category.unknown", id)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Long: `Creates a note from --title and either --body or --body-file.
Use --body-file - to read the body from stdin.

Example:
  notes add --title Groceries --body "milk, eggs" --category 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			categoryID, _ := cmd.Flags().GetInt64("category")
			if strings.TrimSpace(title) == "" {
				return errors.New(i18n.T("cli.title_required"))
			}
			body, _, err := readBody(cmd)
			if err != nil {
				return err
			}
			st, err := currentStore()
			if err != nil {
				return err
			}
			id, err := st.CreateNote(cmd.Context(), title, body, categoryID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.note_created", id))
			return nil
		},
	}
	cmd.Flags().StringP("title", "t", "", "Note title")
	cmd.Flags().StringP("body", "b", "", "Note body")
	cmd.Flags().String("body-file", "", `Read the body from a file ("-" for stdin)`)
	cmd.Flags().Int64P("category", "c", model.UncategorizedID, "Category id (0 for none)")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long: `Lists all notes, or only those of --category. Category 1 ("All Notes")
lists every note.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := currentStore()
			if err != nil {
				return err
			}

			var notes []model.Note
			categoryID, _ := cmd.Flags().GetInt64("category")
			if cmd.Flags().Changed("category") && categoryID != model.AllNotesCategoryID {
				notes, err = st.FetchNotesByCategory(ctx, categoryID)
			} else {
				notes, err = st.FetchAllNotes(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, i18n.T("cli.no_notes"))
				return nil
			}

			names, err := categoryNames(ctx, st)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tPREVIEW")
			for _, n := range notes {
				preview := strings.Join(strings.Fields(n.Preview()), " ")
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, categoryName(names, n.CategoryID), n.Title, preview)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64P("category", "c", model.AllNotesCategoryID, "Only list notes of this category id")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := currentStore()
			if err != nil {
				return err
			}
			n, err := fetchNote(ctx, st, id)
			if err != nil {
				return err
			}
			names, err := categoryNames(ctx, st)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", n.Title)
			fmt.Fprintf(out, "[%s]\n\n", categoryName(names, n.CategoryID))
			fmt.Fprintln(out, n.Body)
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note",
		Long:  `Updates the given fields of a note. Fields without a flag keep their value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			st, err := currentStore()
			if err != nil {
				return err
			}

			s := editor.New(st, id)
			if err := s.Load(cmd.Context()); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					return errors.New(i18n.T("cli.note_missing", id))
				}
				return err
			}
			if cmd.Flags().Changed("title") {
				s.Title, _ = cmd.Flags().GetString("title")
			}
			body, ok, err := readBody(cmd)
			if err != nil {
				return err
			}
			if ok {
				s.Body = body
			}
			if cmd.Flags().Changed("category") {
				s.CategoryID, _ = cmd.Flags().GetInt64("category")
			}

			saved, err := s.Save(cmd.Context())
			if err != nil {
				return err
			}
			if !saved {
				return errors.New(i18n.T("note.save_failed"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.note_updated", id))
			return nil
		},
	}
	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("body", "b", "", "New body")
	cmd.Flags().String("body-file", "", `Read the new body from a file ("-" for stdin)`)
	cmd.Flags().Int64P("category", "c", model.UncategorizedID, "New category id (0 for none)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Long: `Deletes a note after confirmation. Without a terminal on stdin --yes is
required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := currentStore()
			if err != nil {
				return err
			}
			n, err := fetchNote(ctx, st, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				if !stdinIsTerminal() {
					return errors.New(i18n.T("cli.confirm_required", id))
				}
				if !confirm(cmd.InOrStdin(), out, i18n.T("cli.delete_confirm", id, n.Title)) {
					fmt.Fprintln(out, i18n.T("cli.aborted"))
					return nil
				}
			}

			ok, err := st.DeleteNote(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(i18n.T("note.delete_failed"))
			}
			fmt.Fprintln(out, i18n.T("cli.note_deleted", id))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

// confirm prints prompt and reads one answer line. English and German
// affirmatives are accepted.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <id>",
		Short: "Render a note as HTML",
		Long: `Renders the note body as Markdown into a standalone HTML document.
Writes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			st, err := currentStore()
			if err != nil {
				return err
			}
			n, err := fetchNote(cmd.Context(), st, id)
			if err != nil {
				return err
			}
			doc := render.NoteHTML(*n)

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.printed", output))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the HTML document to this file")
	return cmd
}
