package analytics

import (
	"github.com/mmynk/splitledger/internal/models"
)

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func expense(id string, amount models.Amount, paidBy, category, date string, participants ...string) models.Expense {
	if len(participants) == 0 {
		participants = []string{paidBy}
	}
	return models.Expense{
		ID:           id,
		Amount:       amount,
		PaidBy:       paidBy,
		Participants: participants,
		ShareType:    models.ShareEqual,
		Category:     category,
		Date:         day(date),
	}
}

func ids(expenses []models.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}
