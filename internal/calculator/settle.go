package calculator

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrUnbalancedLedger is returned when balances do not net to zero.
var ErrUnbalancedLedger = errors.New("unbalanced ledger")

// settleTolerance is the largest ledger residue accepted, in minor units.
const settleTolerance models.Amount = 1

// MinimizeSettlements produces the payments that zero every balance.
//
// Algorithm (greedy largest-creditor/largest-debtor matching):
//   - Creditors (net > 0) and debtors (net < 0) go into two max-heaps
//   - Pop the largest of each, transfer min(credit, debt), push back any remainder
//   - Repeat until one side is empty
//
// Each transfer clears at least one party, so the result has at most
// (people with a non-zero balance - 1) entries. It is not guaranteed to be the
// global minimum. The result is ordered by debtor, then creditor.
func MinimizeSettlements(balances map[string]models.Balance) ([]models.Settlement, error) {
	var (
		total     models.Amount
		creditors partyHeap
		debtors   partyHeap
	)
	for _, person := range SortedPeople(balances) {
		net := balances[person].Net
		total += net
		switch {
		case net > 0:
			creditors = append(creditors, party{person: person, amount: net})
		case net < 0:
			debtors = append(debtors, party{person: person, amount: -net})
		}
	}
	if total.Abs() > settleTolerance {
		return nil, fmt.Errorf("%w: balances sum to %d, want 0", ErrUnbalancedLedger, total)
	}

	heap.Init(&creditors)
	heap.Init(&debtors)

	settlements := []models.Settlement{}
	for creditors.Len() > 0 && debtors.Len() > 0 {
		c := heap.Pop(&creditors).(party)
		d := heap.Pop(&debtors).(party)

		amount := min(c.amount, d.amount)
		settlements = append(settlements, models.Settlement{From: d.person, To: c.person, Amount: amount})

		c.amount -= amount
		d.amount -= amount
		if c.amount > 0 {
			heap.Push(&creditors, c)
		}
		if d.amount > 0 {
			heap.Push(&debtors, d)
		}
	}

	slices.SortFunc(settlements, func(a, b models.Settlement) int {
		if c := models.ComparePeople(a.From, b.From); c != 0 {
			return c
		}
		return models.ComparePeople(a.To, b.To)
	})
	return settlements, nil
}

// party is one side of an outstanding balance; amount is always positive.
type party struct {
	person string
	amount models.Amount
}

// partyHeap is a max-heap on amount, ties broken by canonical person order.
type partyHeap []party

func (h partyHeap) Len() int { return len(h) }

func (h partyHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return models.ComparePeople(h[i].person, h[j].person) < 0
}

func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *partyHeap) Push(x any) { *h = append(*h, x.(party)) }

func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}
