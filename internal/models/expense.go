package models

import "github.com/shopspring/decimal"

// Expense represents a single payment made by one group member on behalf
// of the whole group. An expense always owns at least one split, and the
// splits sum exactly to the expense amount.
type Expense struct {
	// ID is the store-assigned identifier.
	ID int64

	// GroupID is the group this expense belongs to.
	GroupID int64

	// GroupName is the group's display name, populated by join queries.
	GroupName string

	// Amount is the full expense amount, positive with two fractional digits.
	Amount decimal.Decimal

	// Description is free text, 2-500 characters.
	Description string

	// PaidByID is the member who paid. Must have been a group member when
	// the expense was created.
	PaidByID int64

	// PaidByName is the payer's display name, populated by join queries.
	PaidByName string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the per-member shares, created atomically with the expense.
	Splits []ExpenseSplit
}

// ExpenseSplit is one member's share of a single expense.
type ExpenseSplit struct {
	// UserID identifies the member the share belongs to.
	UserID int64

	// UserName is the member's display name, populated by join queries.
	UserName string

	// ShareAmount is this member's share. Zero or positive, never negative.
	ShareAmount decimal.Decimal
}
