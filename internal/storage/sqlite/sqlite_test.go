package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createGroup(t *testing.T, store *SQLiteStore, name string, creatorID int64) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, CreatedByID: creatorID}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns id", func(t *testing.T) {
		user := createUser(t, store, "Alice", "alice@example.com")
		if user.ID == 0 {
			t.Error("expected user id to be assigned")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		user := &models.User{Name: "Other Alice", Email: "alice@example.com", PasswordHash: "x"}
		if err := store.CreateUser(ctx, user); !errors.Is(err, storage.ErrEmailTaken) {
			t.Errorf("CreateUser error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("EmailExists", func(t *testing.T) {
		exists, err := store.EmailExists(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("EmailExists failed: %v", err)
		}
		if !exists {
			t.Error("expected alice@example.com to exist")
		}

		exists, err = store.EmailExists(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("EmailExists failed: %v", err)
		}
		if exists {
			t.Error("expected nobody@example.com to not exist")
		}
	})

	t.Run("GetUserByEmail and GetUserByID", func(t *testing.T) {
		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		byID, err := store.GetUserByID(ctx, byEmail.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != "alice@example.com" || byID.Name != "Alice" {
			t.Errorf("unexpected user: %+v", byID)
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByID(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByID error = %v, want ErrNotFound", err)
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	t.Run("CreateGroup joins creator atomically", func(t *testing.T) {
		group := createGroup(t, store, "Roommates", alice.ID)
		if group.ID == 0 {
			t.Error("expected group id to be assigned")
		}

		loaded, err := store.GetGroupWithMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupWithMembers failed: %v", err)
		}
		if loaded.CreatedByName != "Alice" {
			t.Errorf("CreatedByName = %q, want Alice", loaded.CreatedByName)
		}
		if len(loaded.Members) != 1 || loaded.Members[0].UserID != alice.ID {
			t.Errorf("expected creator as sole member, got %+v", loaded.Members)
		}
	})

	t.Run("AddGroupMember and membership checks", func(t *testing.T) {
		group := createGroup(t, store, "Trip", alice.ID)

		if err := store.AddGroupMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}

		isMember, err := store.IsUserMemberOfGroup(ctx, bob.ID, group.ID)
		if err != nil {
			t.Fatalf("IsUserMemberOfGroup failed: %v", err)
		}
		if !isMember {
			t.Error("expected bob to be a member")
		}

		members, err := store.GetGroupMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("got %d members, want 2", len(members))
		}
		// Join order: creator first.
		if members[0].UserID != alice.ID || members[1].UserID != bob.ID {
			t.Errorf("members out of join order: %+v", members)
		}
	})

	t.Run("duplicate membership rejected without write", func(t *testing.T) {
		group := createGroup(t, store, "Duo", alice.ID)
		if err := store.AddGroupMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}

		err := store.AddGroupMember(ctx, group.ID, bob.ID)
		if !errors.Is(err, storage.ErrDuplicateMember) {
			t.Errorf("AddGroupMember error = %v, want ErrDuplicateMember", err)
		}

		members, err := store.GetGroupMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Errorf("got %d members after duplicate add, want 2", len(members))
		}
	})

	t.Run("GetUserGroups", func(t *testing.T) {
		groups, err := store.GetUserGroups(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("got %d groups for bob, want 2", len(groups))
		}
		for _, g := range groups {
			if len(g.Members) == 0 {
				t.Errorf("group %d has no materialized members", g.ID)
			}
		}
	})

	t.Run("missing group returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetGroupWithMembers(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroupWithMembers error = %v, want ErrNotFound", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")
	group := createGroup(t, store, "Roommates", alice.ID)
	if err := store.AddGroupMember(ctx, group.ID, bob.ID); err != nil {
		t.Fatalf("AddGroupMember failed: %v", err)
	}

	t.Run("CreateExpense persists splits atomically", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Amount:      mustDecimal(t, "10.00"),
			Description: "groceries",
			PaidByID:    alice.ID,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, ShareAmount: mustDecimal(t, "5.00")},
				{UserID: bob.ID, ShareAmount: mustDecimal(t, "5.00")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		loaded, err := store.GetExpenseWithSplits(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpenseWithSplits failed: %v", err)
		}
		if !loaded.Amount.Equal(mustDecimal(t, "10.00")) {
			t.Errorf("amount = %s, want 10.00", loaded.Amount)
		}
		if loaded.GroupName != "Roommates" || loaded.PaidByName != "Alice" {
			t.Errorf("display fields not materialized: %+v", loaded)
		}
		if len(loaded.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(loaded.Splits))
		}
		sum := decimal.Zero
		for _, s := range loaded.Splits {
			sum = sum.Add(s.ShareAmount)
		}
		if !sum.Equal(loaded.Amount) {
			t.Errorf("splits sum to %s, want %s", sum, loaded.Amount)
		}
	})

	t.Run("expense without splits rejected", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Amount:      mustDecimal(t, "10.00"),
			Description: "no splits",
			PaidByID:    alice.ID,
		}
		if err := store.CreateExpense(ctx, expense); !errors.Is(err, storage.ErrNoSplits) {
			t.Errorf("CreateExpense error = %v, want ErrNoSplits", err)
		}
	})

	t.Run("split failure rolls back the expense", func(t *testing.T) {
		before, err := store.GetGroupExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupExpenses failed: %v", err)
		}

		// The second split references a nonexistent user, so its insert
		// fails after the expense row was already written inside the
		// transaction. Nothing may remain visible.
		expense := &models.Expense{
			GroupID:     group.ID,
			Amount:      mustDecimal(t, "10.00"),
			Description: "doomed",
			PaidByID:    alice.ID,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, ShareAmount: mustDecimal(t, "5.00")},
				{UserID: 424242, ShareAmount: mustDecimal(t, "5.00")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err == nil {
			t.Fatal("expected CreateExpense to fail")
		}

		after, err := store.GetGroupExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroupExpenses failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("expense count changed from %d to %d after failed create", len(before), len(after))
		}
	})

	t.Run("GetUserExpenses covers paid and participated", func(t *testing.T) {
		other := createUser(t, store, "Cara", "cara@example.com")
		otherGroup := createGroup(t, store, "Lunch", other.ID)
		if err := store.AddGroupMember(ctx, otherGroup.ID, bob.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}

		expense := &models.Expense{
			GroupID:     otherGroup.ID,
			Amount:      mustDecimal(t, "20.00"),
			Description: "pizza",
			PaidByID:    other.ID,
			Splits: []models.ExpenseSplit{
				{UserID: other.ID, ShareAmount: mustDecimal(t, "10.00")},
				{UserID: bob.ID, ShareAmount: mustDecimal(t, "10.00")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.GetUserExpenses(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserExpenses failed: %v", err)
		}
		// Bob participated in the groceries expense and in the pizza one.
		if len(expenses) != 2 {
			t.Fatalf("got %d expenses for bob, want 2", len(expenses))
		}
		for _, e := range expenses {
			if len(e.Splits) == 0 {
				t.Errorf("expense %d has no materialized splits", e.ID)
			}
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		doomed := createGroup(t, store, "Doomed", alice.ID)
		if err := store.AddGroupMember(ctx, doomed.ID, bob.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}
		expense := &models.Expense{
			GroupID:     doomed.ID,
			Amount:      mustDecimal(t, "8.00"),
			Description: "snacks",
			PaidByID:    alice.ID,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, ShareAmount: mustDecimal(t, "4.00")},
				{UserID: bob.ID, ShareAmount: mustDecimal(t, "4.00")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, doomed.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetGroupWithMembers(ctx, doomed.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("group still readable after delete: %v", err)
		}
		if _, err := store.GetExpenseWithSplits(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expense still readable after group delete: %v", err)
		}
	})

	t.Run("DeleteExpense removes splits", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Amount:      mustDecimal(t, "6.00"),
			Description: "coffee",
			PaidByID:    bob.ID,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, ShareAmount: mustDecimal(t, "3.00")},
				{UserID: bob.ID, ShareAmount: mustDecimal(t, "3.00")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpenseWithSplits(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expense still readable after delete: %v", err)
		}
	})
}
