// Package analytics aggregates expense sequences into reporting views.
//
// Every operation is a pure function of its inputs. An empty input yields a
// zero-valued result, never an error; only malformed parameters fail, with
// ErrInvalidQuery, before any aggregation runs.
package analytics

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrInvalidQuery is returned for malformed query parameters.
var ErrInvalidQuery = errors.New("invalid query")

// DateRange is an inclusive range of calendar dates. A zero bound is open.
type DateRange struct {
	From models.Date `json:"from"`
	To   models.Date `json:"to"`
}

// Validate rejects a range that ends before it starts.
func (r DateRange) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidQuery, r.To, r.From)
	}
	return nil
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d models.Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Timeframe is a relative window anchored on the current date.
type Timeframe string

const (
	AllTime Timeframe = ""
	Week    Timeframe = "week"
	Month   Timeframe = "month"
	Quarter Timeframe = "quarter"
	Year    Timeframe = "year"
)

// Range resolves the timeframe into the dates it covers, up to and including now.
func (t Timeframe) Range(now models.Date) (DateRange, error) {
	if t == AllTime {
		return DateRange{}, nil
	}
	if now.IsZero() {
		return DateRange{}, fmt.Errorf("%w: timeframe %q needs a current date", ErrInvalidQuery, t)
	}
	switch t {
	case Week:
		return DateRange{From: now.AddDays(-6), To: now}, nil
	case Month:
		return DateRange{From: now.AddMonths(-1), To: now}, nil
	case Quarter:
		return DateRange{From: now.AddMonths(-3), To: now}, nil
	case Year:
		return DateRange{From: now.AddMonths(-12), To: now}, nil
	}
	return DateRange{}, fmt.Errorf("%w: unknown timeframe %q", ErrInvalidQuery, t)
}

// CategoryTotal is the sum and count of expenses in one category.
type CategoryTotal struct {
	Category     string        `json:"category"`
	TotalAmount  models.Amount `json:"totalAmount"`
	ExpenseCount int           `json:"expenseCount"`
}

// inRange returns the expenses dated inside r, preserving input order.
func inRange(expenses []models.Expense, r DateRange) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// groupByCategory sums expenses per category in first-seen order.
func groupByCategory(expenses []models.Expense) []CategoryTotal {
	totals := []CategoryTotal{}
	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[i].TotalAmount += e.Amount
		totals[i].ExpenseCount++
	}
	return totals
}

// rankCategories orders totals by amount descending, then category name.
func rankCategories(totals []CategoryTotal) {
	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		if a.TotalAmount != b.TotalAmount {
			if a.TotalAmount > b.TotalAmount {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Category, b.Category)
	})
}
