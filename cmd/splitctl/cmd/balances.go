package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/storage"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Print what everyone paid, owes and is owed",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			expenses, err := cliExpenses(ctx, store)
			if err != nil {
				return err
			}
			balances, err := calculator.CalculateBalances(expenses)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "PERSON\tPAID\tOWED\tNET\t")
			for _, b := range calculator.SortedBalances(balances) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", b.Person, b.Paid, b.Owed, b.Net)
			}
			return w.Flush()
		})
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Print the payments that settle all balances",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store storage.Store) error {
			expenses, err := cliExpenses(ctx, store)
			if err != nil {
				return err
			}
			balances, err := calculator.CalculateBalances(expenses)
			if err != nil {
				return err
			}
			settlements, err := calculator.MinimizeSettlements(balances)
			if err != nil {
				return err
			}
			if len(settlements) == 0 {
				fmt.Println("All settled up.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, s := range settlements {
				fmt.Fprintf(w, "%s\tpays\t%s\t%s\n", s.From, s.To, s.Amount)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(settleCmd)
	addFilterFlags(balancesCmd)
	addFilterFlags(settleCmd)
}
