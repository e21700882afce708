// Package calculator contains the pure split and balance arithmetic.
// Nothing in this package touches storage; callers supply fully-loaded
// expense data and receive deterministic results.
package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoMembers is returned when a split is requested for an empty member list.
	ErrNoMembers = errors.New("at least one member is required to split an expense")
	// ErrNonPositiveAmount is returned for zero or negative amounts.
	ErrNonPositiveAmount = errors.New("expense amount must be positive")
	// ErrTooPrecise is returned for amounts with more than two fractional digits.
	ErrTooPrecise = errors.New("expense amount must have at most two decimal places")
)

// Share is one member's portion of a split expense.
type Share struct {
	UserID int64
	Amount decimal.Decimal
}

// SplitEqually divides amount evenly among memberIDs with half-up rounding
// to two decimal places. The rounding remainder goes to the member at
// position 0, so the shares always sum exactly to amount (10.00 split three
// ways yields 3.34, 3.33, 3.33).
//
// The caller must supply memberIDs in a stable order; this package uses
// whatever ordering it is given. Services pass members in join order, which
// makes the remainder placement reproducible. That is a determinism choice,
// not a fairness guarantee.
func SplitEqually(amount decimal.Decimal, memberIDs []int64) ([]Share, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, ErrTooPrecise
	}

	count := decimal.NewFromInt(int64(len(memberIDs)))
	base := amount.DivRound(count, 2)
	remainder := amount.Sub(base.Mul(count))

	shares := make([]Share, len(memberIDs))
	for i, id := range memberIDs {
		share := base
		if i == 0 {
			share = share.Add(remainder)
		}
		shares[i] = Share{UserID: id, Amount: share}
	}
	return shares, nil
}
