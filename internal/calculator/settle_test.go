package calculator

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func nets(values map[string]models.Amount) map[string]models.Balance {
	balances := make(map[string]models.Balance, len(values))
	for person, net := range values {
		balances[person] = models.Balance{Person: person, Net: net}
	}
	return balances
}

// applySettlements returns the nets left after paying every settlement.
func applySettlements(balances map[string]models.Balance, settlements []models.Settlement) map[string]models.Amount {
	left := make(map[string]models.Amount, len(balances))
	for person, b := range balances {
		left[person] = b.Net
	}
	for _, s := range settlements {
		left[s.From] += s.Amount
		left[s.To] -= s.Amount
	}
	return left
}

func TestMinimizeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]models.Balance
		want     []models.Settlement
	}{
		{
			name:     "one creditor two debtors",
			balances: nets(map[string]models.Amount{"A": 30, "B": -10, "C": -20}),
			want: []models.Settlement{
				{From: "B", To: "A", Amount: 10},
				{From: "C", To: "A", Amount: 20},
			},
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: nets(map[string]models.Amount{"A": 50, "B": 20, "C": -60, "D": -10}),
			want: []models.Settlement{
				{From: "C", To: "A", Amount: 50},
				{From: "C", To: "B", Amount: 10},
				{From: "D", To: "B", Amount: 10},
			},
		},
		{
			name:     "ties broken by person",
			balances: nets(map[string]models.Amount{"A": 10, "B": 10, "C": -10, "D": -10}),
			want: []models.Settlement{
				{From: "C", To: "A", Amount: 10},
				{From: "D", To: "B", Amount: 10},
			},
		},
		{
			name:     "already settled",
			balances: nets(map[string]models.Amount{"A": 0, "B": 0}),
			want:     []models.Settlement{},
		},
		{
			name:     "empty",
			balances: map[string]models.Balance{},
			want:     []models.Settlement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinimizeSettlements(tt.balances)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for person, left := range applySettlements(tt.balances, got) {
				assert.Zero(t, left, "person %s", person)
			}
		})
	}
}

func TestMinimizeSettlements_Unbalanced(t *testing.T) {
	_, err := MinimizeSettlements(nets(map[string]models.Amount{"A": 30, "B": -10}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalancedLedger))
}

func TestMinimizeSettlements_OneMinorUnitTolerance(t *testing.T) {
	balances := nets(map[string]models.Amount{"A": 31, "B": -30})
	got, err := MinimizeSettlements(balances)
	require.NoError(t, err)
	assert.Equal(t, []models.Settlement{{From: "B", To: "A", Amount: 30}}, got)

	left := applySettlements(balances, got)
	assert.LessOrEqual(t, int64(left["A"].Abs()), int64(settleTolerance))
	assert.Zero(t, left["B"])
}

// Settlements from real expense sets zero every balance with at most k-1 payments.
func TestMinimizeSettlements_FromExpenses(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	people := []string{"ann", "ben", "cat", "dan", "eve", "fay"}
	types := []models.ShareType{models.ShareEqual, models.ShareExact, models.SharePercentage}

	for round := 0; round < 50; round++ {
		var expenses []models.Expense
		for i := 0; i < 1+rng.Intn(12); i++ {
			n := 1 + rng.Intn(len(people))
			participants := append([]string(nil), people[:n]...)
			rng.Shuffle(len(participants), func(a, b int) {
				participants[a], participants[b] = participants[b], participants[a]
			})
			e := models.Expense{
				ID:           fmt.Sprintf("r%d-e%d", round, i),
				Amount:       models.Amount(rng.Intn(100000)),
				PaidBy:       people[rng.Intn(len(people))],
				Participants: participants,
				ShareType:    types[rng.Intn(len(types))],
			}
			switch e.ShareType {
			case models.ShareExact:
				remaining := int64(e.Amount)
				for j, p := range participants {
					v := remaining
					if j < n-1 {
						v = rng.Int63n(remaining + 1)
					}
					remaining -= v
					e.CustomShares = append(e.CustomShares, share(p, v))
				}
			case models.SharePercentage:
				remaining := int64(100)
				for j, p := range participants {
					v := remaining
					if j < n-1 {
						v = rng.Int63n(remaining + 1)
					}
					remaining -= v
					e.CustomShares = append(e.CustomShares, share(p, v))
				}
			}
			expenses = append(expenses, e)
		}

		balances, err := CalculateBalances(expenses)
		require.NoError(t, err)

		var total models.Amount
		nonZero := 0
		for _, b := range balances {
			total += b.Net
			if b.Net != 0 {
				nonZero++
			}
		}
		require.Zero(t, total, "round %d", round)

		settlements, err := MinimizeSettlements(balances)
		require.NoError(t, err)
		if nonZero > 0 {
			assert.LessOrEqual(t, len(settlements), nonZero-1, "round %d", round)
		}
		for _, s := range settlements {
			assert.Positive(t, int64(s.Amount))
		}
		for person, left := range applySettlements(balances, settlements) {
			assert.Zero(t, left, "round %d person %s", round, person)
		}

		again, err := MinimizeSettlements(balances)
		require.NoError(t, err)
		assert.Equal(t, settlements, again)
	}
}
