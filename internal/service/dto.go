package service

import (
	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/models"
)

// Response DTOs: the external representation of every ledger entity. These
// are also the payloads handed to the notification sink, so browsers see
// the same shape on both channels.

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type GroupMemberResponse struct {
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	JoinedAt  int64  `json:"joinedAt"`
}

type GroupResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	CreatedByID   int64                 `json:"createdById"`
	CreatedByName string                `json:"createdByName"`
	CreatedAt     int64                 `json:"createdAt"`
	Members       []GroupMemberResponse `json:"members"`
}

type ExpenseSplitResponse struct {
	UserID      int64           `json:"userId"`
	UserName    string          `json:"userName"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
}

type ExpenseResponse struct {
	ID          int64                  `json:"id"`
	GroupID     int64                  `json:"groupId"`
	GroupName   string                 `json:"groupName"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	PaidByID    int64                  `json:"paidById"`
	PaidByName  string                 `json:"paidByName"`
	CreatedAt   int64                  `json:"createdAt"`
	Splits      []ExpenseSplitResponse `json:"splits"`
}

type BalanceResponse struct {
	UserID   int64           `json:"userId"`
	UserName string          `json:"userName"`
	Balance  decimal.Decimal `json:"balance"`
}

type DashboardResponse struct {
	TotalOwed      decimal.Decimal   `json:"totalOwed"`
	TotalOwedTo    decimal.Decimal   `json:"totalOwedTo"`
	RecentExpenses []ExpenseResponse `json:"recentExpenses"`
	Groups         []GroupResponse   `json:"groups"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

func toGroupResponse(group *models.Group) *GroupResponse {
	members := make([]GroupMemberResponse, len(group.Members))
	for i, m := range group.Members {
		members[i] = GroupMemberResponse{
			UserID:    m.UserID,
			UserName:  m.UserName,
			UserEmail: m.UserEmail,
			JoinedAt:  m.JoinedAt,
		}
	}
	return &GroupResponse{
		ID:            group.ID,
		Name:          group.Name,
		CreatedByID:   group.CreatedByID,
		CreatedByName: group.CreatedByName,
		CreatedAt:     group.CreatedAt,
		Members:       members,
	}
}

func toExpenseResponse(expense *models.Expense) *ExpenseResponse {
	splits := make([]ExpenseSplitResponse, len(expense.Splits))
	for i, s := range expense.Splits {
		splits[i] = ExpenseSplitResponse{
			UserID:      s.UserID,
			UserName:    s.UserName,
			ShareAmount: s.ShareAmount,
		}
	}
	return &ExpenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		GroupName:   expense.GroupName,
		Amount:      expense.Amount,
		Description: expense.Description,
		PaidByID:    expense.PaidByID,
		PaidByName:  expense.PaidByName,
		CreatedAt:   expense.CreatedAt,
		Splits:      splits,
	}
}
