package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// PartitionSummary totals one side of the individual/group split.
type PartitionSummary struct {
	TotalAmount models.Amount `json:"totalAmount"`
	Count       int           `json:"count"`
	// Percentage of the grand total amount, two decimal places.
	Percentage decimal.Decimal `json:"percentage"`
}

// GroupSummary adds participant and category detail to the group partition.
type GroupSummary struct {
	PartitionSummary
	AverageParticipants decimal.Decimal `json:"averageParticipants"`
	Categories          []CategoryTotal `json:"categories"`
}

// Totals is the grand total across both partitions.
type Totals struct {
	Amount   models.Amount `json:"amount"`
	Expenses int           `json:"expenses"`
}

// Comparison is the result of IndividualVsGroup.
type Comparison struct {
	Individual PartitionSummary `json:"individual"`
	Group      GroupSummary     `json:"group"`
	Total      Totals           `json:"total"`
}

// IndividualVsGroup partitions expenses into single-participant and shared ones.
func IndividualVsGroup(expenses []models.Expense, r DateRange) (Comparison, error) {
	if err := r.Validate(); err != nil {
		return Comparison{}, err
	}

	var (
		result       Comparison
		group        []models.Expense
		participants int
	)
	for _, e := range inRange(expenses, r) {
		result.Total.Amount += e.Amount
		result.Total.Expenses++
		if !e.IsGroup() {
			result.Individual.TotalAmount += e.Amount
			result.Individual.Count++
			continue
		}
		result.Group.TotalAmount += e.Amount
		result.Group.Count++
		participants += len(e.Participants)
		group = append(group, e)
	}

	result.Individual.Percentage = ratio(result.Individual.TotalAmount.Decimal().Mul(hundred), result.Total.Amount.Decimal())
	result.Group.Percentage = ratio(result.Group.TotalAmount.Decimal().Mul(hundred), result.Total.Amount.Decimal())
	result.Group.AverageParticipants = ratio(decimal.NewFromInt(int64(participants)), decimal.NewFromInt(int64(result.Group.Count)))
	result.Group.Categories = groupByCategory(group)
	rankCategories(result.Group.Categories)
	return result, nil
}

var hundred = decimal.NewFromInt(100)

// ratio returns num/den rounded to two places, or 0 when den is 0.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Round(2)
}
