// Package cmd implements splitctl, a command line front end that works
// directly on a ledger database.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

var cfg *config.Config

var dbPath string
var fromString, toString string
var personFilter, categoryFilter string

var rootCmd = &cobra.Command{
	Use:           "splitctl",
	Short:         "Inspect and settle a shared-expense ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Setup(cfg.LoggingOptions())
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Ledger database path (default from DB_PATH).")
}

// addFilterFlags registers the expense filter flags on c.
func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVarP(&fromString, "begin-date", "b", "", "First date to include (YYYY-MM-DD).")
	c.Flags().StringVarP(&toString, "end-date", "e", "", "Last date to include (YYYY-MM-DD).")
	c.Flags().StringVar(&personFilter, "person", "", "Only expenses this person paid for or shares.")
	c.Flags().StringVar(&categoryFilter, "category", "", "Only expenses in this category.")
}

func cliFilter() (storage.ExpenseFilter, error) {
	from, err := models.ParseDate(fromString)
	if err != nil {
		return storage.ExpenseFilter{}, fmt.Errorf("begin-date: %w", err)
	}
	to, err := models.ParseDate(toString)
	if err != nil {
		return storage.ExpenseFilter{}, fmt.Errorf("end-date: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return storage.ExpenseFilter{}, fmt.Errorf("end-date %s is before begin-date %s", to, from)
	}
	return storage.ExpenseFilter{From: from, To: to, Person: personFilter, Category: categoryFilter}, nil
}

// withStore opens the ledger database for the duration of fn.
func withStore(fn func(context.Context, storage.Store) error) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(context.Background(), store)
}

// cliExpenses loads the expenses matching the filter flags.
func cliExpenses(ctx context.Context, store storage.Store) ([]models.Expense, error) {
	filter, err := cliFilter()
	if err != nil {
		return nil, err
	}
	return store.ListExpenses(ctx, filter)
}
