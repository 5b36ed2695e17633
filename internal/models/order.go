package models

import (
	"cmp"
	"slices"
	"strings"
)

// ComparePeople is the canonical ordering of person identifiers. Remainder
// distribution, tie-breaking and output ordering all go through it.
func ComparePeople(a, b string) int {
	return strings.Compare(a, b)
}

// SortPeople sorts people in canonical order, in place.
func SortPeople(people []string) {
	slices.SortFunc(people, ComparePeople)
}

// CompareExpenses orders expenses by date, then by ID.
func CompareExpenses(a, b Expense) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
