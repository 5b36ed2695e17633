package calculator

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func share(person string, value int64) models.Share {
	return models.Share{Person: person, Value: decimal.NewFromInt(value)}
}

func pct(person, value string) models.Share {
	return models.Share{Person: person, Value: decimal.RequireFromString(value)}
}

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
		want    models.Split
		wantErr error
	}{
		{
			name: "equal split assigns remainder in canonical order",
			expense: models.Expense{
				ID: "e1", Amount: 100, PaidBy: "A", ShareType: models.ShareEqual,
				Participants: []string{"C", "A", "B"},
			},
			want: models.Split{{Person: "A", Amount: 34}, {Person: "B", Amount: 33}, {Person: "C", Amount: 33}},
		},
		{
			name: "equal split ignores custom shares",
			expense: models.Expense{
				ID: "e2", Amount: 90, PaidBy: "A", ShareType: models.ShareEqual,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{share("A", 1)},
			},
			want: models.Split{{Person: "A", Amount: 45}, {Person: "B", Amount: 45}},
		},
		{
			name: "zero amount",
			expense: models.Expense{
				ID: "e3", Amount: 0, PaidBy: "A", ShareType: models.ShareEqual,
				Participants: []string{"A", "B"},
			},
			want: models.Split{{Person: "A", Amount: 0}, {Person: "B", Amount: 0}},
		},
		{
			name: "exact split taken verbatim",
			expense: models.Expense{
				ID: "e4", Amount: 1000, PaidBy: "A", ShareType: models.ShareExact,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{share("B", 700), share("A", 300)},
			},
			want: models.Split{{Person: "A", Amount: 300}, {Person: "B", Amount: 700}},
		},
		{
			name: "exact shares that do not sum to amount",
			expense: models.Expense{
				ID: "e5", Amount: 1000, PaidBy: "A", ShareType: models.ShareExact,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{share("A", 300), share("B", 699)},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "percentage split corrects rounding on the first largest share",
			expense: models.Expense{
				ID: "e6", Amount: 99, PaidBy: "A", ShareType: models.SharePercentage,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{pct("A", "50"), pct("B", "50")},
			},
			want: models.Split{{Person: "A", Amount: 49}, {Person: "B", Amount: 50}},
		},
		{
			name: "percentage split adds residue",
			expense: models.Expense{
				ID: "e7", Amount: 100, PaidBy: "A", ShareType: models.SharePercentage,
				Participants: []string{"A", "B", "C"},
				CustomShares: []models.Share{pct("A", "33.33"), pct("B", "33.33"), pct("C", "33.34")},
			},
			want: models.Split{{Person: "A", Amount: 34}, {Person: "B", Amount: 33}, {Person: "C", Amount: 33}},
		},
		{
			name: "percentages within tolerance",
			expense: models.Expense{
				ID: "e8", Amount: 10000, PaidBy: "A", ShareType: models.SharePercentage,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{pct("A", "60"), pct("B", "39.99")},
			},
			want: models.Split{{Person: "A", Amount: 6001}, {Person: "B", Amount: 3999}},
		},
		{
			name: "percentages outside tolerance",
			expense: models.Expense{
				ID: "e9", Amount: 10000, PaidBy: "A", ShareType: models.SharePercentage,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{pct("A", "60"), pct("B", "39.98")},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "no participants",
			expense: models.Expense{
				ID: "e10", Amount: 100, PaidBy: "A", ShareType: models.ShareEqual,
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "missing custom share",
			expense: models.Expense{
				ID: "e11", Amount: 100, PaidBy: "A", ShareType: models.ShareExact,
				Participants: []string{"A", "B"},
				CustomShares: []models.Share{share("A", 100)},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "custom share for a non-participant",
			expense: models.Expense{
				ID: "e12", Amount: 100, PaidBy: "A", ShareType: models.ShareExact,
				Participants: []string{"A"},
				CustomShares: []models.Share{share("A", 50), share("Z", 50)},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "duplicate participant",
			expense: models.Expense{
				ID: "e13", Amount: 100, PaidBy: "A", ShareType: models.ShareEqual,
				Participants: []string{"A", "A"},
			},
			wantErr: ErrInvalidSplit,
		},
		{
			name: "unknown share type",
			expense: models.Expense{
				ID: "e14", Amount: 100, PaidBy: "A", ShareType: "WEIGHTED",
				Participants: []string{"A"},
			},
			wantErr: ErrInvalidSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSplit(tt.expense)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expense.Amount, got.Total())
		})
	}
}

// Shares must reconcile exactly for every amount and participant count.
func TestCalculateSplit_SumsToAmount(t *testing.T) {
	people := []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}
	amounts := []models.Amount{0, 1, 2, 7, 99, 100, 101, 333, 1001, 99999, 123456789}

	for n := 1; n <= len(people); n++ {
		participants := people[:n]
		for _, amount := range amounts {
			equal := models.Expense{
				ID: "eq", Amount: amount, PaidBy: "P1",
				ShareType: models.ShareEqual, Participants: participants,
			}

			// Exact: everything on the first person.
			exact := equal
			exact.ShareType = models.ShareExact
			exact.CustomShares = nil
			for i, p := range participants {
				v := int64(0)
				if i == 0 {
					v = int64(amount)
				}
				exact.CustomShares = append(exact.CustomShares, share(p, v))
			}

			// Percentage: 100/n with the leftover on the last person.
			percentage := equal
			percentage.ShareType = models.SharePercentage
			each := decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(n))).Truncate(2)
			last := decimal.NewFromInt(100).Sub(each.Mul(decimal.NewFromInt(int64(n - 1))))
			for i, p := range participants {
				v := each
				if i == n-1 {
					v = last
				}
				percentage.CustomShares = append(percentage.CustomShares, models.Share{Person: p, Value: v})
			}

			for _, e := range []models.Expense{equal, exact, percentage} {
				t.Run(fmt.Sprintf("%s/n=%d/amount=%d", e.ShareType, n, amount), func(t *testing.T) {
					split, err := CalculateSplit(e)
					require.NoError(t, err)
					assert.Len(t, split, n)
					assert.Equal(t, amount, split.Total())
					for _, s := range split {
						assert.GreaterOrEqual(t, int64(s.Amount), int64(0))
					}
				})
			}
		}
	}
}

// The rounding residue grows with the amount when percentages sit at the edge
// of the tolerance; correcting it must not take time proportional to it.
func TestCalculateSplit_LargeResidue(t *testing.T) {
	tests := []struct {
		name   string
		amount models.Amount
		shares []models.Share
		want   models.Split
	}{
		{
			name:   "over by 0.01 percent",
			amount: 1_000_000_000_000_000,
			shares: []models.Share{pct("A", "50.005"), pct("B", "50.005")},
			want:   models.Split{{Person: "A", Amount: 500_000_000_000_000}, {Person: "B", Amount: 500_000_000_000_000}},
		},
		{
			name:   "under by 0.01 percent",
			amount: 1_000_000_000_000_000,
			shares: []models.Share{pct("A", "49.995"), pct("B", "49.995")},
			want:   models.Split{{Person: "A", Amount: 500_000_000_000_000}, {Person: "B", Amount: 500_000_000_000_000}},
		},
		{
			name:   "zero share stays zero",
			amount: 1_000_000_000_000_003,
			shares: []models.Share{pct("A", "100.01"), pct("B", "0")},
			want:   models.Split{{Person: "A", Amount: 1_000_000_000_000_003}, {Person: "B", Amount: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.Expense{
				ID: "big", Amount: tt.amount, PaidBy: "A", ShareType: models.SharePercentage,
				Participants: []string{"A", "B"},
				CustomShares: tt.shares,
			}

			start := time.Now()
			got, err := CalculateSplit(e)
			elapsed := time.Since(start)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.amount, got.Total())
			assert.Less(t, elapsed, time.Second)
		})
	}
}

func TestCalculateSplit_Deterministic(t *testing.T) {
	e := models.Expense{
		ID: "e", Amount: 1000, PaidBy: "X", ShareType: models.SharePercentage,
		Participants: []string{"Z", "Y", "X"},
		CustomShares: []models.Share{pct("X", "33.333"), pct("Y", "33.333"), pct("Z", "33.334")},
	}

	first, err := CalculateSplit(e)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := CalculateSplit(e)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
