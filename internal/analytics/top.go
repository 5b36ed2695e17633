package analytics

import (
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// DefaultTopLimit is used when TopQuery.Limit is 0.
const DefaultTopLimit = 10

// TopQuery selects expenses for TopExpenses.
type TopQuery struct {
	Limit     int
	Category  string
	Timeframe Timeframe
	// Now anchors Timeframe; required unless Timeframe is AllTime.
	Now models.Date
}

// TopExpenses returns the largest expenses, ties broken by date descending then
// ID ascending.
func TopExpenses(expenses []models.Expense, q TopQuery) ([]models.Expense, error) {
	limit := q.Limit
	switch {
	case limit == 0:
		limit = DefaultTopLimit
	case limit < 0:
		return nil, fmt.Errorf("%w: limit must be at least 1, got %d", ErrInvalidQuery, q.Limit)
	}
	window, err := q.Timeframe.Range(q.Now)
	if err != nil {
		return nil, err
	}

	top := make([]models.Expense, 0, len(expenses))
	for _, e := range inRange(expenses, window) {
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		top = append(top, e)
	}

	slices.SortFunc(top, func(a, b models.Expense) int {
		if a.Amount != b.Amount {
			if a.Amount > b.Amount {
				return -1
			}
			return 1
		}
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return models.CompareExpenses(a, b)
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
