package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/analytics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var reportYear, reportMonth int
var topLimit int
var topTimeframe string

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Summarize one calendar month",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			expenses, err := cliExpenses(ctx, store)
			if err != nil {
				return err
			}
			s, err := analytics.MonthlySummary(expenses, reportYear, time.Month(reportMonth))
			if err != nil {
				return err
			}
			fmt.Printf("%04d-%02d: %d expenses, total %s, average %s\n",
				s.Year, s.Month, s.TotalExpenses, s.TotalAmount, s.AverageExpense)
			return nil
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Total the expenses per category, largest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			expenses, err := cliExpenses(ctx, store)
			if err != nil {
				return err
			}
			totals, err := analytics.CategorySummary(expenses, analytics.CategoryQuery{Ranked: true})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "CATEGORY\tEXPENSES\tTOTAL\t")
			for _, c := range totals {
				fmt.Fprintf(w, "%s\t%d\t%s\t\n", c.Category, c.ExpenseCount, c.TotalAmount)
			}
			return w.Flush()
		})
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the largest expenses",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			expenses, err := cliExpenses(ctx, store)
			if err != nil {
				return err
			}
			top, err := analytics.TopExpenses(expenses, analytics.TopQuery{
				Limit:     topLimit,
				Timeframe: analytics.Timeframe(topTimeframe),
				Now:       models.DateOf(time.Now()),
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, e := range top {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Date, e.Amount, e.PaidBy, e.Category, e.Description)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(topCmd)

	now := time.Now()
	addFilterFlags(monthlyCmd)
	monthlyCmd.Flags().IntVar(&reportYear, "year", now.Year(), "Calendar year.")
	monthlyCmd.Flags().IntVar(&reportMonth, "month", int(now.Month()), "Calendar month (1-12).")

	addFilterFlags(categoriesCmd)

	addFilterFlags(topCmd)
	topCmd.Flags().IntVarP(&topLimit, "limit", "n", analytics.DefaultTopLimit, "Number of expenses to show.")
	topCmd.Flags().StringVar(&topTimeframe, "timeframe", "", "Restrict to the last week, month, quarter or year.")
}
