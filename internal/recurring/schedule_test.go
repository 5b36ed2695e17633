package recurring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func rule(freq models.Frequency, start models.Date) models.RecurringRule {
	return models.RecurringRule{
		ID: "rule-1",
		Template: models.Expense{
			Amount:       12000,
			Description:  "Rent",
			PaidBy:       "Alice",
			Participants: []string{"Alice", "Bob"},
			ShareType:    models.ShareEqual,
			Category:     "Housing",
		},
		Frequency: freq,
		StartDate: start,
	}
}

func dateStrings(dates []models.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func TestOccurrences(t *testing.T) {
	tests := []struct {
		name    string
		rule    models.RecurringRule
		through models.Date
		want    []string
	}{
		{
			name:    "daily",
			rule:    rule(models.Daily, models.NewDate(2024, time.March, 1)),
			through: models.NewDate(2024, time.March, 3),
			want:    []string{"2024-03-01", "2024-03-02", "2024-03-03"},
		},
		{
			name:    "weekly",
			rule:    rule(models.Weekly, models.NewDate(2024, time.March, 1)),
			through: models.NewDate(2024, time.March, 20),
			want:    []string{"2024-03-01", "2024-03-08", "2024-03-15"},
		},
		{
			name:    "monthly clamps to month end and returns to anchor",
			rule:    rule(models.Monthly, models.NewDate(2024, time.January, 31)),
			through: models.NewDate(2024, time.April, 30),
			want:    []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"},
		},
		{
			name:    "yearly on leap day",
			rule:    rule(models.Yearly, models.NewDate(2024, time.February, 29)),
			through: models.NewDate(2028, time.March, 1),
			want:    []string{"2024-02-29", "2025-02-28", "2026-02-28", "2027-02-28", "2028-02-29"},
		},
		{
			name:    "not started",
			rule:    rule(models.Daily, models.NewDate(2024, time.March, 10)),
			through: models.NewDate(2024, time.March, 9),
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dateStrings(Occurrences(tt.rule, tt.through))
			if len(got) != len(tt.want) {
				t.Fatalf("Occurrences() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Occurrences()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOccurrences_LastRunAndEndDate(t *testing.T) {
	r := rule(models.Monthly, models.NewDate(2024, time.January, 15))
	r.LastRun = models.NewDate(2024, time.February, 15)
	r.EndDate = models.NewDate(2024, time.April, 20)

	got := dateStrings(Occurrences(r, models.NewDate(2024, time.December, 31)))
	want := []string{"2024-03-15", "2024-04-15"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Occurrences() = %v, want %v", got, want)
	}
}

func TestMaterialize(t *testing.T) {
	r := rule(models.Monthly, models.NewDate(2024, time.January, 1))
	r.Template.ShareType = models.ShareExact
	r.Template.CustomShares = []models.Share{
		{Person: "Alice", Value: decimal.NewFromInt(7000)},
		{Person: "Bob", Value: decimal.NewFromInt(5000)},
	}
	date := models.NewDate(2024, time.February, 1)

	e := Materialize(r, date)
	if err := e.Validate(); err != nil {
		t.Fatalf("materialized expense is invalid: %v", err)
	}
	if e.Date.Compare(date) != 0 {
		t.Errorf("Date = %s, want %s", e.Date, date)
	}
	if e.ID == "" {
		t.Error("Expected ID to be set")
	}
	if again := Materialize(r, date); again.ID != e.ID {
		t.Errorf("ID not deterministic: %s != %s", again.ID, e.ID)
	}
	if other := Materialize(r, date.AddMonths(1)); other.ID == e.ID {
		t.Error("Expected different occurrences to get different IDs")
	}

	e.Participants[0] = "Mallory"
	if r.Template.Participants[0] != "Alice" {
		t.Error("Materialize must not share participant slices with the template")
	}
}
