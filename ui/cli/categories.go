// Copyright (c) 2026 Notes Team
// Notes - simple categorized note keeping
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rymate/notes/internal/i18n"
	"github.com/rymate/notes/internal/model"
	"github.com/spf13/cobra"
)

// newCategoryCmd is the root command for category operations.
func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories (add, list)",
	}
	cmd.AddCommand(newCategoryAddCmd(), newCategoryListCmd())
	return cmd
}

func newCategoryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return errors.New("category title must not be empty")
			}
			st, err := currentStore()
			if err != nil {
				return err
			}
			id, err := st.AddCategory(cmd.Context(), title)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.category_created", id))
			return nil
		},
	}
}

func newCategoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long: `Lists all categories. --exclude-first hides the "All Notes" pseudo
category, which is the list offered when assigning a note.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := currentStore()
			if err != nil {
				return err
			}
			var cats []model.Category
			if exclude, _ := cmd.Flags().GetBool("exclude-first"); exclude {
				cats, err = st.FetchCategoriesExcludingFirst(cmd.Context())
			} else {
				cats, err = st.FetchCategories(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE")
			for _, c := range cats {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("exclude-first", false, `Hide the "All Notes" category`)
	return cmd
}
