package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/calculator"
	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/notify"
	"github.com/settlr/settlr/internal/storage"
)

// ExpenseService orchestrates expense creation and balance queries:
// membership guard, split calculation, atomic persistence, then a
// best-effort notification.
type ExpenseService struct {
	store    storage.Store
	guard    *MembershipGuard
	notifier notify.Notifier
}

// NewExpenseService creates an ExpenseService.
func NewExpenseService(store storage.Store, guard *MembershipGuard, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{store: store, guard: guard, notifier: notifier}
}

type CreateExpenseRequest struct {
	GroupID     int64           `json:"groupId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CreateExpense records a new expense paid by the caller and splits it
// equally among the group's current members, remainder to the earliest
// joiner. The expense and its splits are persisted in one transaction;
// the group notification fires only after the commit.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID int64, req CreateExpenseRequest) Response[*ExpenseResponse] {
	isMember, err := s.guard.IsMember(ctx, userID, req.GroupID)
	if err != nil {
		slog.Error("CreateExpense: membership check failed", "group_id", req.GroupID, "error", err)
		return Fail[*ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if !isMember {
		return Fail[*ExpenseResponse](MsgUserNotMemberOfGroup, http.StatusForbidden)
	}

	members, err := s.guard.ListMembers(ctx, req.GroupID)
	if err != nil {
		slog.Error("CreateExpense: member load failed", "group_id", req.GroupID, "error", err)
		return Fail[*ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	// Structurally impossible while the creator-auto-join rule holds, but a
	// zero-member group must never produce a splitless expense.
	if len(members) == 0 {
		return Fail[*ExpenseResponse](MsgGroupNotFound, http.StatusNotFound)
	}

	memberIDs := make([]int64, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}

	shares, err := calculator.SplitEqually(req.Amount, memberIDs)
	if err != nil {
		return Fail[*ExpenseResponse](err.Error(), http.StatusBadRequest)
	}

	splits := make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.ExpenseSplit{UserID: share.UserID, ShareAmount: share.Amount}
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		Amount:      req.Amount,
		Description: req.Description,
		PaidByID:    userID,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense: insert failed", "group_id", req.GroupID, "error", err)
		return Fail[*ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	full, err := s.store.GetExpenseWithSplits(ctx, expense.ID)
	if err != nil {
		slog.Error("CreateExpense: reload failed", "expense_id", expense.ID, "error", err)
		return Fail[*ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	resp := toExpenseResponse(full)
	notifyGroup(s.notifier, req.GroupID, notify.EventExpenseAdded, resp)

	slog.Info("expense created",
		"expense_id", expense.ID,
		"group_id", req.GroupID,
		"paid_by", userID,
		"amount", req.Amount,
		"splits", len(splits),
	)
	return Success(resp, MsgExpenseCreatedSuccessfully)
}

// GetGroupExpenses lists a group's full expense history, newest first.
// Member-gated.
func (s *ExpenseService) GetGroupExpenses(ctx context.Context, userID, groupID int64) Response[[]ExpenseResponse] {
	isMember, err := s.guard.IsMember(ctx, userID, groupID)
	if err != nil {
		slog.Error("GetGroupExpenses: membership check failed", "group_id", groupID, "error", err)
		return Fail[[]ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if !isMember {
		return Fail[[]ExpenseResponse](MsgUserNotMemberOfGroup, http.StatusForbidden)
	}

	expenses, err := s.store.GetGroupExpenses(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupExpenses failed", "group_id", groupID, "error", err)
		return Fail[[]ExpenseResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = *toExpenseResponse(&expenses[i])
	}
	return Success(resp, "")
}

// GetGroupBalances folds the group's expense history into one net balance
// per user. Member-gated.
func (s *ExpenseService) GetGroupBalances(ctx context.Context, userID, groupID int64) Response[[]BalanceResponse] {
	isMember, err := s.guard.IsMember(ctx, userID, groupID)
	if err != nil {
		slog.Error("GetGroupBalances: membership check failed", "group_id", groupID, "error", err)
		return Fail[[]BalanceResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if !isMember {
		return Fail[[]BalanceResponse](MsgUserNotMemberOfGroup, http.StatusForbidden)
	}

	expenses, err := s.store.GetGroupExpenses(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", groupID, "error", err)
		return Fail[[]BalanceResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	balances := calculator.GroupBalances(expenses)
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = BalanceResponse{UserID: b.UserID, UserName: b.UserName, Balance: b.Balance}
	}
	return Success(resp, "")
}
