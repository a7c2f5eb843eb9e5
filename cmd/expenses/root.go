package main

import (
	"fmt"

	"expenses/internal/cli"
	"expenses/internal/config"
	"expenses/internal/log"
	"expenses/internal/services"

	"github.com/spf13/cobra"
)

// app is the state shared by every command once the store is open.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	svc    *services.ExpenseService

	flagDBPath string
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "expenses",
		Short:        "Personal expense tracker",
		Long:         "Record dated expenses against categories and report per-category totals.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         a.runMenu,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.open(cmd)
	}

	rootCmd.PersistentFlags().StringVar(&a.flagDBPath, "db", "", "SQLite database file (overrides EXPENSES_DB_PATH)")

	rootCmd.AddCommand(
		newAddCmd(a),
		newCategoryCmd(a),
		newSummaryCmd(a),
		newCategoriesCmd(a),
		newListCmd(a),
	)

	return rootCmd, a
}

// execute runs cmd and closes the store afterwards. cobra skips post-run
// hooks when RunE fails, so the close cannot live in PersistentPostRunE.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *app) open(cmd *cobra.Command) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if a.flagDBPath != "" {
			c.SQLiteDBPath = a.flagDBPath
		}
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg)

	store, err := cli.OpenStore(cmd.Context(), a.logger, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.svc = services.NewExpenseService(store, a.logger)
	a.logger.Debug("Store ready",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldDBPath, cfg.SQLiteDBPath)
	return nil
}

func (a *app) close() error {
	if a.svc == nil {
		return nil
	}
	err := a.svc.Close()
	a.svc = nil
	return err
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	menu := cli.NewMenu(a.svc, cmd.InOrStdin(), cmd.OutOrStdout(), a.cfg.CurrencySymbol, a.logger)
	err := menu.Run(cmd.Context())
	// Run already closed the store.
	a.svc = nil
	return err
}
