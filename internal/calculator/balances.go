package calculator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// CalculateBalances folds expenses into a net balance per person.
//
// Algorithm:
//   - For each expense: the payer contributed +amount, each participant owes their split
//   - net = paid - owed
//
// A payer who never participates still gets an entry with Owed = 0. The first
// expense that fails to split aborts the whole calculation; a partial result
// would silently skew every balance.
func CalculateBalances(expenses []models.Expense) (map[string]models.Balance, error) {
	balances := make(map[string]*models.Balance)
	entry := func(person string) *models.Balance {
		b, ok := balances[person]
		if !ok {
			b = &models.Balance{Person: person}
			balances[person] = b
		}
		return b
	}

	for _, e := range expenses {
		if e.PaidBy == "" {
			return nil, fmt.Errorf("%w: expense %q: missing payer", ErrInvalidSplit, e.ID)
		}

		split, err := CalculateSplit(e)
		if err != nil {
			return nil, err
		}

		entry(e.PaidBy).Paid += e.Amount
		for _, share := range split {
			entry(share.Person).Owed += share.Amount
		}
	}

	result := make(map[string]models.Balance, len(balances))
	for person, b := range balances {
		b.Net = b.Paid - b.Owed
		result[person] = *b
	}
	return result, nil
}

// SortedPeople returns the people of a balance mapping in canonical order.
func SortedPeople(balances map[string]models.Balance) []string {
	return slices.SortedFunc(maps.Keys(balances), models.ComparePeople)
}

// SortedBalances returns the balances in canonical person order.
func SortedBalances(balances map[string]models.Balance) []models.Balance {
	people := SortedPeople(balances)
	out := make([]models.Balance, len(people))
	for i, p := range people {
		out[i] = balances[p]
	}
	return out
}
