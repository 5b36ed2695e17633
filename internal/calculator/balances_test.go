package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestCalculateBalances(t *testing.T) {
	expenses := []models.Expense{
		{
			ID: "dinner", Amount: 3000, PaidBy: "Alice", ShareType: models.ShareEqual,
			Participants: []string{"Alice", "Bob", "Charlie"},
		},
		{
			ID: "taxi", Amount: 1000, PaidBy: "Bob", ShareType: models.ShareExact,
			Participants: []string{"Alice", "Bob"},
			CustomShares: []models.Share{share("Alice", 600), share("Bob", 400)},
		},
		{
			// Diana pays for something she does not share.
			ID: "gift", Amount: 500, PaidBy: "Diana", ShareType: models.ShareEqual,
			Participants: []string{"Charlie"},
		},
	}

	balances, err := CalculateBalances(expenses)
	require.NoError(t, err)

	want := map[string]models.Balance{
		"Alice":   {Person: "Alice", Paid: 3000, Owed: 1600, Net: 1400},
		"Bob":     {Person: "Bob", Paid: 1000, Owed: 1400, Net: -400},
		"Charlie": {Person: "Charlie", Paid: 0, Owed: 1500, Net: -1500},
		"Diana":   {Person: "Diana", Paid: 500, Owed: 0, Net: 500},
	}
	assert.Equal(t, want, balances)

	var total models.Amount
	for _, b := range balances {
		total += b.Net
	}
	assert.Equal(t, models.Amount(0), total)
}

func TestCalculateBalances_Empty(t *testing.T) {
	balances, err := CalculateBalances(nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestCalculateBalances_FailsFast(t *testing.T) {
	expenses := []models.Expense{
		{ID: "ok", Amount: 100, PaidBy: "A", ShareType: models.ShareEqual, Participants: []string{"A", "B"}},
		{
			ID: "bad", Amount: 100, PaidBy: "A", ShareType: models.ShareExact,
			Participants: []string{"A", "B"},
			CustomShares: []models.Share{share("A", 10), share("B", 10)},
		},
	}

	balances, err := CalculateBalances(expenses)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSplit))
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Nil(t, balances)
}

func TestCalculateBalances_MissingPayer(t *testing.T) {
	_, err := CalculateBalances([]models.Expense{
		{ID: "x", Amount: 100, ShareType: models.ShareEqual, Participants: []string{"A"}},
	})
	assert.True(t, errors.Is(err, ErrInvalidSplit))
}

func TestSortedBalances(t *testing.T) {
	balances := map[string]models.Balance{
		"carol": {Person: "carol"},
		"alice": {Person: "alice"},
		"bob":   {Person: "bob"},
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, SortedPeople(balances))

	sorted := SortedBalances(balances)
	require.Len(t, sorted, 3)
	assert.Equal(t, "alice", sorted[0].Person)
	assert.Equal(t, "carol", sorted[2].Person)
}
