package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/models"
)

// MemberBalance is one user's net position within a group.
type MemberBalance struct {
	UserID   int64
	UserName string
	// Balance is positive when the group owes the user money and negative
	// when the user owes the group.
	Balance decimal.Decimal
}

// GroupBalances folds a group's full expense history into a net balance per
// user. For each expense the payer is credited the full amount and every
// split holder (payer included) is debited their share, so the balances of
// any history sum to zero.
//
// Every user who appears as payer or split holder is present in the result,
// even with a zero balance. The result is sorted by user id so the output
// never depends on map iteration order.
func GroupBalances(expenses []models.Expense) []MemberBalance {
	balances := make(map[int64]decimal.Decimal)
	names := make(map[int64]string)

	touch := func(userID int64, name string) {
		if _, ok := balances[userID]; !ok {
			balances[userID] = decimal.Zero
			names[userID] = name
		}
	}

	for _, expense := range expenses {
		touch(expense.PaidByID, expense.PaidByName)
		balances[expense.PaidByID] = balances[expense.PaidByID].Add(expense.Amount)

		for _, split := range expense.Splits {
			touch(split.UserID, split.UserName)
			balances[split.UserID] = balances[split.UserID].Sub(split.ShareAmount)
		}
	}

	ids := make([]int64, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]MemberBalance, len(ids))
	for i, id := range ids {
		result[i] = MemberBalance{UserID: id, UserName: names[id], Balance: balances[id]}
	}
	return result
}

// UserTotals computes the dashboard aggregates for one user across all the
// expenses they paid or participate in, regardless of group.
//
// For an expense the user paid, the group owes them the amount minus their
// own share (zero share if they have no split). For an expense someone else
// paid, the user owes their share. The two totals are therefore always
// non-negative and cross-group debts are never netted against each other.
func UserTotals(userID int64, expenses []models.Expense) (totalOwed, totalOwedTo decimal.Decimal) {
	totalOwed = decimal.Zero
	totalOwedTo = decimal.Zero

	for _, expense := range expenses {
		ownShare := decimal.Zero
		for _, split := range expense.Splits {
			if split.UserID == userID {
				ownShare = split.ShareAmount
				break
			}
		}

		if expense.PaidByID == userID {
			totalOwedTo = totalOwedTo.Add(expense.Amount.Sub(ownShare))
		} else if !ownShare.IsZero() {
			totalOwed = totalOwed.Add(ownShare)
		}
	}
	return totalOwed, totalOwedTo
}
