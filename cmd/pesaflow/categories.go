package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			cats, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(cats) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet. Use 'pesaflow categories add' to create one.")) //nolint:forbidigo // User-facing output
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, cat := range cats {
				fmt.Fprintf(w, "%s\t%s\t%s\n", cat.ID, cat.Name, cli.SubtleStyle.Render(cat.Description))
			}
			return w.Flush()
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			description, _ := cmd.Flags().GetString("description")
			cat, err := store.CreateCategory(ctx, args[0], description)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", cat.Name, cat.ID))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().String("description", "", "category description")
	return cmd
}

func categorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <transaction-id> <category-id>",
		Short: "Assign a category to a stored transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			if err := store.SetTransactionCategory(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to categorize transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categorized transaction %s", args[0]))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
