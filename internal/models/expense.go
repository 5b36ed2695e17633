package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidExpense is returned when an expense is structurally malformed.
var ErrInvalidExpense = errors.New("invalid expense")

// ShareType selects how an expense's amount is divided among its participants.
type ShareType string

const (
	// ShareEqual divides the amount evenly; custom shares are ignored.
	ShareEqual ShareType = "EQUAL"
	// ShareExact takes each participant's share in minor units from CustomShares.
	ShareExact ShareType = "EXACT"
	// SharePercentage takes each participant's percentage from CustomShares.
	SharePercentage ShareType = "PERCENTAGE"
)

// Valid reports whether t is a known share type.
func (t ShareType) Valid() bool {
	switch t {
	case ShareEqual, ShareExact, SharePercentage:
		return true
	}
	return false
}

// Share is one participant's custom weight: minor units for EXACT, a percentage
// for PERCENTAGE.
type Share struct {
	Person string          `json:"person"`
	Value  decimal.Decimal `json:"value"`
}

// Expense is one recorded payment, split among a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Amount is the total paid, in minor units.
	Amount Amount `json:"amount"`

	Description string `json:"description"`

	// PaidBy is the person who paid. They need not be a participant.
	PaidBy string `json:"paidBy"`

	// Participants are the people sharing the expense.
	Participants []string `json:"participants"`

	ShareType ShareType `json:"shareType"`

	// CustomShares is only meaningful for EXACT and PERCENTAGE.
	CustomShares []Share `json:"customShares,omitempty"`

	// Category is a free-form label.
	Category string `json:"category"`

	Date Date `json:"date"`
}

// NewExpense validates e and returns a normalized copy: identifiers trimmed,
// slices copied, and custom shares dropped for EQUAL splits.
func NewExpense(e Expense) (Expense, error) {
	out := e
	out.PaidBy = strings.TrimSpace(e.PaidBy)
	out.Category = strings.TrimSpace(e.Category)
	out.Participants = make([]string, len(e.Participants))
	for i, p := range e.Participants {
		out.Participants[i] = strings.TrimSpace(p)
	}
	out.CustomShares = nil
	if out.ShareType != ShareEqual {
		for _, s := range e.CustomShares {
			out.CustomShares = append(out.CustomShares, Share{Person: strings.TrimSpace(s.Person), Value: s.Value})
		}
	}
	if err := out.Validate(); err != nil {
		return Expense{}, err
	}
	return out, nil
}

// Validate checks the structure of the expense. Whether custom shares reconcile
// with the amount is checked when the split is computed.
func (e Expense) Validate() error {
	if e.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidExpense)
	}
	if e.PaidBy == "" {
		return fmt.Errorf("%w: paidBy is required", ErrInvalidExpense)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidExpense)
	}
	if !e.ShareType.Valid() {
		return fmt.Errorf("%w: unknown share type %q", ErrInvalidExpense, e.ShareType)
	}
	if err := ValidateParticipants(e.Participants); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}
	if e.ShareType == ShareEqual {
		return nil
	}
	if err := ValidateShares(e.ShareType, e.Participants, e.CustomShares); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}
	return nil
}

// ValidateParticipants rejects an empty set, blank identifiers and duplicates.
func ValidateParticipants(participants []string) error {
	if len(participants) == 0 {
		return errors.New("must have at least one participant")
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return errors.New("participant identifier cannot be empty")
		}
		if seen[p] {
			return fmt.Errorf("duplicate participant %q", p)
		}
		seen[p] = true
	}
	return nil
}

// ValidateShares checks custom shares against the declared participants: every
// key must be a participant, appear once and carry a non-negative value. EXACT
// values must be whole minor units.
func ValidateShares(t ShareType, participants []string, shares []Share) error {
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if !slices.Contains(participants, s.Person) {
			return fmt.Errorf("custom share for %q who is not a participant", s.Person)
		}
		if seen[s.Person] {
			return fmt.Errorf("duplicate custom share for %q", s.Person)
		}
		seen[s.Person] = true
		if s.Value.IsNegative() {
			return fmt.Errorf("custom share for %q cannot be negative", s.Person)
		}
		if t == ShareExact && !s.Value.Equal(s.Value.Truncate(0)) {
			return fmt.Errorf("exact share for %q must be a whole number of minor units", s.Person)
		}
	}
	return nil
}

// IsGroup reports whether more than one person shares the expense.
func (e Expense) IsGroup() bool {
	return len(e.Participants) > 1
}
