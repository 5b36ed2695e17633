package analytics

import "github.com/mmynk/splitledger/internal/models"

// CategoryQuery selects expenses for CategorySummary.
type CategoryQuery struct {
	Range DateRange
	// Ranked orders the result by total descending instead of first-seen order.
	Ranked bool
}

// CategorySummary totals expenses per category over a date range.
func CategorySummary(expenses []models.Expense, q CategoryQuery) ([]CategoryTotal, error) {
	if err := q.Range.Validate(); err != nil {
		return nil, err
	}
	totals := groupByCategory(inRange(expenses, q.Range))
	if q.Ranked {
		rankCategories(totals)
	}
	return totals, nil
}
