package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// addOptions holds the raw flag values of the add command.
type addOptions struct {
	amount       string
	paidBy       string
	participants []string
	shareType    string
	shares       []string
	description  string
	category     string
	date         string
}

var addOpts addOptions

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		expense, err := addOpts.expense(models.DateOf(time.Now()))
		if err != nil {
			return err
		}
		split, err := calculator.CalculateSplit(expense)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, store storage.Store) error {
			if err := store.CreateExpense(ctx, &expense); err != nil {
				return err
			}
			fmt.Printf("Recorded %s (%s paid %s)\n", expense.ID, expense.PaidBy, expense.Amount)
			for _, s := range split {
				fmt.Printf("  %s owes %s\n", s.Person, s.Amount)
			}
			return nil
		})
	},
}

// expense builds a validated expense from the flags. An empty date means today.
func (o addOptions) expense(today models.Date) (models.Expense, error) {
	amount, err := models.ParseAmount(o.amount)
	if err != nil {
		return models.Expense{}, err
	}
	date := today
	if o.date != "" {
		if date, err = models.ParseDate(o.date); err != nil {
			return models.Expense{}, err
		}
	}

	shareType := models.ShareType(strings.ToUpper(o.shareType))
	var shares []models.Share
	for _, raw := range o.shares {
		person, value, ok := strings.Cut(raw, "=")
		if !ok {
			return models.Expense{}, fmt.Errorf("share %q must be person=value", raw)
		}
		s := models.Share{Person: strings.TrimSpace(person)}
		switch shareType {
		case models.ShareExact:
			// Exact shares are given in major units like the amount.
			v, err := models.ParseAmount(strings.TrimSpace(value))
			if err != nil {
				return models.Expense{}, fmt.Errorf("share for %q: %w", s.Person, err)
			}
			s.Value = decimal.NewFromInt(int64(v))
		default:
			v, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return models.Expense{}, fmt.Errorf("share for %q: %w", s.Person, err)
			}
			s.Value = v
		}
		shares = append(shares, s)
	}

	return models.NewExpense(models.Expense{
		Amount:       amount,
		Description:  o.description,
		PaidBy:       o.paidBy,
		Participants: o.participants,
		ShareType:    shareType,
		CustomShares: shares,
		Category:     o.category,
		Date:         date,
	})
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addOpts.amount, "amount", "", "Amount in major units, e.g. 12.34.")
	addCmd.Flags().StringVar(&addOpts.paidBy, "paid-by", "", "Person who paid.")
	addCmd.Flags().StringSliceVar(&addOpts.participants, "participants", nil, "People sharing the expense.")
	addCmd.Flags().StringVar(&addOpts.shareType, "share-type", string(models.ShareEqual), "EQUAL, EXACT or PERCENTAGE.")
	addCmd.Flags().StringArrayVar(&addOpts.shares, "share", nil, "Custom share as person=value; repeat per participant.")
	addCmd.Flags().StringVar(&addOpts.description, "description", "", "What the expense was for.")
	addCmd.Flags().StringVar(&addOpts.category, "category", "", "Category label.")
	addCmd.Flags().StringVar(&addOpts.date, "date", "", "Date (YYYY-MM-DD), default today.")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("paid-by")
	_ = addCmd.MarkFlagRequired("participants")
}
