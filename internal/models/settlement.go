package models

// Settlement is a payment from a debtor to a creditor that reduces both
// outstanding balances.
type Settlement struct {
	// From is the person who pays (debtor settling up).
	From string `json:"from"`

	// To is the person who receives the payment (creditor being paid).
	To string `json:"to"`

	// Amount is the payment amount, always positive.
	Amount Amount `json:"amount"`
}
