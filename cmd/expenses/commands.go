package main

import (
	"fmt"
	"strings"

	"expenses/internal/cli"
	"expenses/internal/core"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <amount> <category>",
		Short: "Record an expense, creating its category if needed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := core.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[1], err)
			}
			category := strings.TrimSpace(args[2])
			e, created, err := a.svc.AddExpense(cmd.Context(), strings.TrimSpace(args[0]), amount, category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(out, "Category '%s' added.\n", category)
			}
			fmt.Fprintf(out, "Expense #%d recorded: %s %s\n", e.ID, e.Date, cli.FormatAmount(a.cfg.CurrencySymbol, e.Amount))
			return nil
		},
	}
}

func newCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.AddCategory(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if res.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "Category '%s' added.\n", res.Category.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Category '%s' already exists.\n", res.Category.Name)
			}
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the total spent per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			totals, err := a.svc.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.FormatSummary(a.cfg.CurrencySymbol, totals))
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := a.svc.Categories(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.FormatCategories(cats))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recorded expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cats, err := a.svc.Categories(ctx)
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(cats))
			for _, c := range cats {
				names[c.ID] = c.Name
			}

			expenses, err := a.svc.Expenses(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range expenses {
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", e.ID, e.Date, cli.FormatAmount(a.cfg.CurrencySymbol, e.Amount), names[e.CategoryID])
			}
			return nil
		},
	}
}
