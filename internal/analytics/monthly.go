package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// MonthSummary totals one calendar month.
type MonthSummary struct {
	Year           int           `json:"year"`
	Month          int           `json:"month"`
	TotalAmount    models.Amount `json:"totalAmount"`
	TotalExpenses  int           `json:"totalExpenses"`
	AverageExpense models.Amount `json:"averageExpense"`
}

// MonthlySummary sums the expenses dated in the given month. The average is
// rounded half to even to whole minor units and is 0 for an empty month.
func MonthlySummary(expenses []models.Expense, year int, month time.Month) (MonthSummary, error) {
	if month < time.January || month > time.December {
		return MonthSummary{}, fmt.Errorf("%w: month %d outside 1-12", ErrInvalidQuery, month)
	}
	if year < 1 {
		return MonthSummary{}, fmt.Errorf("%w: year %d", ErrInvalidQuery, year)
	}

	summary := MonthSummary{Year: year, Month: int(month)}
	for _, e := range expenses {
		y, m, _ := e.Date.Date()
		if y != year || m != month {
			continue
		}
		summary.TotalAmount += e.Amount
		summary.TotalExpenses++
	}
	if summary.TotalExpenses > 0 {
		avg := decimal.NewFromInt(int64(summary.TotalAmount)).
			Div(decimal.NewFromInt(int64(summary.TotalExpenses))).
			RoundBank(0)
		summary.AverageExpense = models.Amount(avg.IntPart())
	}
	return summary, nil
}
