package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/settlr/settlr/internal/calculator"
	"github.com/settlr/settlr/internal/storage"
)

// maxRecentExpenses caps the dashboard's activity feed.
const maxRecentExpenses = 10

// DashboardService assembles the per-user overview: net totals across all
// groups, recent activity and group list.
type DashboardService struct {
	store storage.Store
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetDashboard computes the caller's cross-group totals from their full
// expense history and returns them with the ten most recent expenses and
// the caller's groups.
func (s *DashboardService) GetDashboard(ctx context.Context, userID int64) Response[*DashboardResponse] {
	expenses, err := s.store.GetUserExpenses(ctx, userID)
	if err != nil {
		slog.Error("GetDashboard: expense load failed", "user_id", userID, "error", err)
		return Fail[*DashboardResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	totalOwed, totalOwedTo := calculator.UserTotals(userID, expenses)

	recent := expenses
	if len(recent) > maxRecentExpenses {
		recent = recent[:maxRecentExpenses]
	}
	recentResp := make([]ExpenseResponse, len(recent))
	for i := range recent {
		recentResp[i] = *toExpenseResponse(&recent[i])
	}

	groups, err := s.store.GetUserGroups(ctx, userID)
	if err != nil {
		slog.Error("GetDashboard: group load failed", "user_id", userID, "error", err)
		return Fail[*DashboardResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	groupResp := make([]GroupResponse, len(groups))
	for i := range groups {
		groupResp[i] = *toGroupResponse(&groups[i])
	}

	return Success(&DashboardResponse{
		TotalOwed:      totalOwed,
		TotalOwedTo:    totalOwedTo,
		RecentExpenses: recentResp,
		Groups:         groupResp,
	}, "")
}
