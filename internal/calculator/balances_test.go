package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/models"
)

func expense(t *testing.T, payer int64, amount string, shares map[int64]string) models.Expense {
	t.Helper()
	e := models.Expense{PaidByID: payer, Amount: dec(t, amount)}
	for _, id := range sortedKeys(shares) {
		e.Splits = append(e.Splits, models.ExpenseSplit{UserID: id, ShareAmount: dec(t, shares[id])})
	}
	return e
}

func sortedKeys(m map[int64]string) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	return ids
}

func TestGroupBalances(t *testing.T) {
	// Three members, user 1 pays 300.00 split evenly.
	expenses := []models.Expense{
		expense(t, 1, "300.00", map[int64]string{1: "100.00", 2: "100.00", 3: "100.00"}),
	}

	balances := GroupBalances(expenses)
	if len(balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances))
	}

	want := map[int64]string{1: "200.00", 2: "-100.00", 3: "-100.00"}
	for _, b := range balances {
		if !b.Balance.Equal(dec(t, want[b.UserID])) {
			t.Errorf("user %d: balance = %s, want %s", b.UserID, b.Balance, want[b.UserID])
		}
	}
}

func TestGroupBalancesZeroSum(t *testing.T) {
	histories := [][]models.Expense{
		nil,
		{
			expense(t, 1, "10.00", map[int64]string{1: "3.34", 2: "3.33", 3: "3.33"}),
		},
		{
			expense(t, 1, "300.00", map[int64]string{1: "100.00", 2: "100.00", 3: "100.00"}),
			expense(t, 2, "10.00", map[int64]string{1: "3.34", 2: "3.33", 3: "3.33"}),
			expense(t, 3, "45.67", map[int64]string{2: "22.84", 3: "22.83"}),
		},
	}

	for i, history := range histories {
		sum := decimal.Zero
		for _, b := range GroupBalances(history) {
			sum = sum.Add(b.Balance)
		}
		if !sum.IsZero() {
			t.Errorf("history %d: balances sum to %s, want 0", i, sum)
		}
	}
}

func TestGroupBalancesIncludesZeroBalanceUsers(t *testing.T) {
	// User 2 pays back exactly what they owe across two expenses; they must
	// still appear in the result.
	expenses := []models.Expense{
		expense(t, 1, "10.00", map[int64]string{1: "5.00", 2: "5.00"}),
		expense(t, 2, "10.00", map[int64]string{1: "5.00", 2: "5.00"}),
	}

	balances := GroupBalances(expenses)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	for _, b := range balances {
		if !b.Balance.IsZero() {
			t.Errorf("user %d: balance = %s, want 0", b.UserID, b.Balance)
		}
	}
}

func TestGroupBalancesOrderIsStable(t *testing.T) {
	expenses := []models.Expense{
		expense(t, 9, "30.00", map[int64]string{9: "10.00", 4: "10.00", 7: "10.00"}),
	}

	first := GroupBalances(expenses)
	for i := 0; i < 20; i++ {
		again := GroupBalances(expenses)
		for j := range first {
			if first[j].UserID != again[j].UserID {
				t.Fatalf("run %d: order differs at %d: %d vs %d", i, j, first[j].UserID, again[j].UserID)
			}
		}
	}
	if first[0].UserID != 4 || first[1].UserID != 7 || first[2].UserID != 9 {
		t.Errorf("balances not sorted by user id: %+v", first)
	}
}

func TestUserTotals(t *testing.T) {
	// User 1 pays 100 split 50/50 with user 2, and owes 100 on user 3's
	// 200-split-two-ways expense.
	expenses := []models.Expense{
		expense(t, 1, "100.00", map[int64]string{1: "50.00", 2: "50.00"}),
		expense(t, 3, "200.00", map[int64]string{1: "100.00", 3: "100.00"}),
	}

	owed, owedTo := UserTotals(1, expenses)
	if !owed.Equal(dec(t, "100.00")) {
		t.Errorf("totalOwed = %s, want 100.00", owed)
	}
	if !owedTo.Equal(dec(t, "50.00")) {
		t.Errorf("totalOwedTo = %s, want 50.00", owedTo)
	}
}

func TestUserTotalsPayerWithoutOwnSplit(t *testing.T) {
	// The payer has no split of their own: the whole amount is owed to them.
	expenses := []models.Expense{
		expense(t, 1, "60.00", map[int64]string{2: "30.00", 3: "30.00"}),
	}

	owed, owedTo := UserTotals(1, expenses)
	if !owed.IsZero() {
		t.Errorf("totalOwed = %s, want 0", owed)
	}
	if !owedTo.Equal(dec(t, "60.00")) {
		t.Errorf("totalOwedTo = %s, want 60.00", owedTo)
	}
}

func TestUserTotalsUninvolvedExpenseIgnored(t *testing.T) {
	expenses := []models.Expense{
		expense(t, 2, "80.00", map[int64]string{2: "40.00", 3: "40.00"}),
	}

	owed, owedTo := UserTotals(1, expenses)
	if !owed.IsZero() || !owedTo.IsZero() {
		t.Errorf("totals = (%s, %s), want (0, 0)", owed, owedTo)
	}
}
