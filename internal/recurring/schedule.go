// Package recurring turns recurring rules into concrete expense records.
package recurring

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

// idNamespace seeds the deterministic IDs of materialized expenses.
var idNamespace = uuid.MustParse("5b0f6a3e-1c52-4f0e-9d7b-4d8f0c2e7a11")

// nth returns the k-th occurrence of the rule, counted from StartDate.
// Monthly and yearly occurrences stay anchored on the start day and clamp to
// the end of shorter months.
func nth(rule models.RecurringRule, k int) models.Date {
	switch rule.Frequency {
	case models.Daily:
		return rule.StartDate.AddDays(k)
	case models.Weekly:
		return rule.StartDate.AddDays(7 * k)
	case models.Monthly:
		return rule.StartDate.AddMonths(k)
	case models.Yearly:
		return rule.StartDate.AddMonths(12 * k)
	}
	return models.Date{}
}

// Occurrences lists the dates on which the rule is due, after LastRun and up to
// and including through. EndDate, when set, caps the schedule.
func Occurrences(rule models.RecurringRule, through models.Date) []models.Date {
	if rule.StartDate.IsZero() || through.IsZero() {
		return nil
	}
	limit := through
	if !rule.EndDate.IsZero() && rule.EndDate.Before(limit) {
		limit = rule.EndDate
	}

	var dates []models.Date
	for k := 0; ; k++ {
		d := nth(rule, k)
		if d.IsZero() || d.After(limit) {
			break
		}
		if !rule.LastRun.IsZero() && !d.After(rule.LastRun) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// Materialize produces the expense for one occurrence. The ID is derived from
// the rule and the date, so materializing the same occurrence twice yields the
// same record.
func Materialize(rule models.RecurringRule, date models.Date) models.Expense {
	e := rule.Template
	e.ID = uuid.NewSHA1(idNamespace, []byte(rule.ID+"/"+date.String())).String()
	e.Date = date
	e.Participants = slices.Clone(rule.Template.Participants)
	e.CustomShares = slices.Clone(rule.Template.CustomShares)
	return e
}
