package models

// ShareAmount is one participant's share of an expense.
type ShareAmount struct {
	Person string `json:"person"`
	Amount Amount `json:"amount"`
}

// Split is the per-participant division of one expense, in canonical person
// order. Its shares sum to the expense amount.
type Split []ShareAmount

// Total returns the sum of all shares.
func (s Split) Total() Amount {
	var total Amount
	for _, sh := range s {
		total += sh.Amount
	}
	return total
}

// Balance is one person's position across a set of expenses.
type Balance struct {
	Person string `json:"person"`

	// Paid is the sum of amounts of expenses this person paid for.
	Paid Amount `json:"paid"`

	// Owed is the sum of this person's shares.
	Owed Amount `json:"owed"`

	// Net is Paid - Owed. Positive means others owe this person.
	Net Amount `json:"net"`
}
