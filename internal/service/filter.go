package service

import (
	"strings"

	"github.com/mmynk/splitledger/internal/analytics"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// storageFilter converts a wire filter, rejecting a range that ends before it starts.
func storageFilter(f ledgerv1.ExpenseFilter) (storage.ExpenseFilter, error) {
	if err := dateRange(f).Validate(); err != nil {
		return storage.ExpenseFilter{}, err
	}
	return storage.ExpenseFilter{
		From:     f.From,
		To:       f.To,
		Person:   strings.TrimSpace(f.Person),
		Category: strings.TrimSpace(f.Category),
	}, nil
}

func dateRange(f ledgerv1.ExpenseFilter) analytics.DateRange {
	return analytics.DateRange{From: f.From, To: f.To}
}
