// Package models defines the core domain models for the ledger.
//
// # Facts
//
//   - Expense: one payment made by PaidBy and split among Participants
//   - RecurringRule: a template that materializes into Expense records on a calendar
//
// Expenses are immutable once recorded. The calculator and analytics packages only
// read them.
//
// # Derived values
//
//   - Split: the per-participant shares of one expense
//   - Balance: paid, owed and net position of one person across a set of expenses
//   - Settlement: one directed payment that reduces a debtor's and a creditor's balance
//
// Derived values are recomputed per request and never persisted.
//
// # Conventions
//
// Money is an Amount counted in minor units (cents). People and categories are plain
// string identifiers; the engine accepts any identifier and leaves their validity to
// the caller. Wherever output order matters, people are ordered with ComparePeople
// and expenses with CompareExpenses.
package models
