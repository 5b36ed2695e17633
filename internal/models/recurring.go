package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRule is returned when a recurring rule is malformed.
var ErrInvalidRule = errors.New("invalid recurring rule")

// Frequency is how often a recurring rule fires.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// RecurringRule materializes Template into a concrete expense on every
// occurrence between StartDate and EndDate.
type RecurringRule struct {
	ID string `json:"id"`

	// Template carries every expense field except ID and Date.
	Template Expense `json:"template"`

	Frequency Frequency `json:"frequency"`

	StartDate Date `json:"startDate"`

	// EndDate is inclusive; zero means the rule never ends.
	EndDate Date `json:"endDate"`

	// LastRun is the date of the last materialized occurrence; zero means never.
	LastRun Date `json:"lastRun"`

	// CreatedAt is the Unix timestamp when the rule was created.
	CreatedAt int64 `json:"createdAt"`
}

// Validate checks the schedule and the template.
func (r RecurringRule) Validate() error {
	switch r.Frequency {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, r.Frequency)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidRule)
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidRule)
	}
	tmpl := r.Template
	tmpl.Date = r.StartDate
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("%w: template: %v", ErrInvalidRule, err)
	}
	return nil
}
