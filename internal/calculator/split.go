package calculator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrInvalidSplit is returned when an expense's split policy and data cannot
// reconcile to its amount.
var ErrInvalidSplit = errors.New("invalid split")

// percentageTolerance is how far custom percentages may stray from 100.
var percentageTolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// splitFunc divides amount among people (already in canonical order) and returns
// one share per person, in the same order.
type splitFunc func(e models.Expense, people []string) ([]models.Amount, error)

var splitters = map[models.ShareType]splitFunc{
	models.ShareEqual:      splitEqual,
	models.ShareExact:      splitExact,
	models.SharePercentage: splitPercentage,
}

// CalculateSplit computes how much each participant owes for one expense.
// The shares always sum to exactly e.Amount.
//
// Algorithm:
//   - EQUAL: amount / n each; the remainder goes one minor unit at a time to
//     participants in canonical order
//   - EXACT: shares taken verbatim from CustomShares; they must sum to amount
//   - PERCENTAGE: round-half-to-even(amount × pct / 100); the rounding residue is
//     corrected ±1 at a time on the largest shares first
func CalculateSplit(e models.Expense) (models.Split, error) {
	if e.Amount < 0 {
		return nil, invalidSplit(e, "amount cannot be negative")
	}
	if err := models.ValidateParticipants(e.Participants); err != nil {
		return nil, invalidSplit(e, "%v", err)
	}
	split, ok := splitters[e.ShareType]
	if !ok {
		return nil, invalidSplit(e, "unknown share type %q", e.ShareType)
	}

	people := slices.Clone(e.Participants)
	models.SortPeople(people)

	amounts, err := split(e, people)
	if err != nil {
		return nil, err
	}

	result := make(models.Split, len(people))
	for i, p := range people {
		result[i] = models.ShareAmount{Person: p, Amount: amounts[i]}
	}
	return result, nil
}

func splitEqual(e models.Expense, people []string) ([]models.Amount, error) {
	n := models.Amount(len(people))
	base, remainder := e.Amount/n, e.Amount%n

	amounts := make([]models.Amount, len(people))
	for i := range amounts {
		amounts[i] = base
		if models.Amount(i) < remainder {
			amounts[i]++
		}
	}
	return amounts, nil
}

func splitExact(e models.Expense, people []string) ([]models.Amount, error) {
	values, err := customValues(e, people)
	if err != nil {
		return nil, err
	}

	amounts := make([]models.Amount, len(people))
	var total models.Amount
	for i, v := range values {
		amounts[i] = models.Amount(v.IntPart())
		total += amounts[i]
	}
	if total != e.Amount {
		return nil, invalidSplit(e, "exact shares sum to %d, want %d", total, e.Amount)
	}
	return amounts, nil
}

func splitPercentage(e models.Expense, people []string) ([]models.Amount, error) {
	values, err := customValues(e, people)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	if sum.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return nil, invalidSplit(e, "percentages sum to %s, want 100", sum)
	}

	total := decimal.NewFromInt(int64(e.Amount))
	amounts := make([]models.Amount, len(people))
	var allocated models.Amount
	for i, pct := range values {
		amounts[i] = models.Amount(total.Mul(pct).Div(hundred).RoundBank(0).IntPart())
		allocated += amounts[i]
	}

	// Largest share first, then canonical person order.
	order := make([]int, len(people))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if amounts[a] != amounts[b] {
			if amounts[a] > amounts[b] {
				return -1
			}
			return 1
		}
		return models.ComparePeople(people[a], people[b])
	})

	spreadResidue(amounts, order, e.Amount-allocated)
	return amounts, nil
}

// spreadResidue adds residue to amounts, evenly across order with the
// remainder going one minor unit at a time in order. Shares never drop below
// zero; a share that reaches zero leaves the rotation.
func spreadResidue(amounts []models.Amount, order []int, residue models.Amount) {
	if residue > 0 {
		n := models.Amount(len(order))
		each, rest := residue/n, residue%n
		for k, i := range order {
			amounts[i] += each
			if models.Amount(k) < rest {
				amounts[i]++
			}
		}
		return
	}

	for residue < 0 {
		live := make([]int, 0, len(order))
		smallest := models.Amount(-1)
		for _, i := range order {
			if amounts[i] > 0 {
				live = append(live, i)
				if smallest < 0 || amounts[i] < smallest {
					smallest = amounts[i]
				}
			}
		}
		if len(live) == 0 {
			return
		}
		step := min(-residue/models.Amount(len(live)), smallest)
		if step == 0 {
			for _, i := range live {
				if residue == 0 {
					break
				}
				amounts[i]--
				residue++
			}
			continue
		}
		for _, i := range live {
			amounts[i] -= step
		}
		residue += step * models.Amount(len(live))
	}
}

// customValues returns each person's custom share value, in people order.
func customValues(e models.Expense, people []string) ([]decimal.Decimal, error) {
	if err := models.ValidateShares(e.ShareType, e.Participants, e.CustomShares); err != nil {
		return nil, invalidSplit(e, "%v", err)
	}
	byPerson := make(map[string]decimal.Decimal, len(e.CustomShares))
	for _, s := range e.CustomShares {
		byPerson[s.Person] = s.Value
	}

	values := make([]decimal.Decimal, len(people))
	for i, p := range people {
		v, ok := byPerson[p]
		if !ok {
			return nil, invalidSplit(e, "missing %s share for %q", e.ShareType, p)
		}
		values[i] = v
	}
	return values, nil
}

func invalidSplit(e models.Expense, format string, args ...any) error {
	return fmt.Errorf("%w: expense %q: %s", ErrInvalidSplit, e.ID, fmt.Sprintf(format, args...))
}
