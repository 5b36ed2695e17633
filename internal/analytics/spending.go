package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// SpendingQuery selects expenses for SpendingPatterns.
type SpendingQuery struct {
	// Person restricts the result to expenses paid by this person; empty means everyone.
	Person string
	Range  DateRange
}

// CategoryAmount is what one person paid in one category.
type CategoryAmount struct {
	Category string        `json:"category"`
	Amount   models.Amount `json:"amount"`
	// Percentage of the person's total paid, rounded to a whole number.
	Percentage int `json:"percentage"`
}

// PersonSpending is what one person paid out of pocket.
type PersonSpending struct {
	TotalPaid         models.Amount    `json:"totalPaid"`
	CategoryBreakdown []CategoryAmount `json:"categoryBreakdown"`
}

// Spending is the result of SpendingPatterns.
type Spending struct {
	TotalAmount        models.Amount             `json:"totalAmount"`
	TotalExpenses      int                       `json:"totalExpenses"`
	IndividualSpending map[string]PersonSpending `json:"individualSpending"`
}

// SpendingPatterns breaks down what each payer paid per category. Amounts are
// what the payer put down, not their share of it.
func SpendingPatterns(expenses []models.Expense, q SpendingQuery) (Spending, error) {
	if err := q.Range.Validate(); err != nil {
		return Spending{}, err
	}

	result := Spending{IndividualSpending: make(map[string]PersonSpending)}
	byPayer := make(map[string][]models.Expense)
	for _, e := range inRange(expenses, q.Range) {
		if q.Person != "" && e.PaidBy != q.Person {
			continue
		}
		result.TotalAmount += e.Amount
		result.TotalExpenses++
		byPayer[e.PaidBy] = append(byPayer[e.PaidBy], e)
	}

	for payer, paid := range byPayer {
		var ps PersonSpending
		for _, e := range paid {
			ps.TotalPaid += e.Amount
		}
		totals := groupByCategory(paid)
		rankCategories(totals)
		ps.CategoryBreakdown = make([]CategoryAmount, len(totals))
		for i, t := range totals {
			ps.CategoryBreakdown[i] = CategoryAmount{
				Category:   t.Category,
				Amount:     t.TotalAmount,
				Percentage: percentOf(t.TotalAmount, ps.TotalPaid),
			}
		}
		result.IndividualSpending[payer] = ps
	}
	return result, nil
}

// percentOf returns part/total*100 rounded half up, or 0 when total is 0.
func percentOf(part, total models.Amount) int {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
	return int(p.IntPart())
}

// Payers returns the people in a Spending result in canonical order.
func (s Spending) Payers() []string {
	people := make([]string, 0, len(s.IndividualSpending))
	for p := range s.IndividualSpending {
		people = append(people, p)
	}
	models.SortPeople(people)
	return people
}
