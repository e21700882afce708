// Package api exposes the ledger over HTTP. Every endpoint reads and writes
// the uniform response envelope; the envelope's errorCode doubles as the
// HTTP status.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/settlr/settlr/internal/auth"
	"github.com/settlr/settlr/internal/middleware"
	"github.com/settlr/settlr/internal/service"
)

// Server bundles the ledger services behind HTTP handlers.
type Server struct {
	auth      *service.AuthService
	groups    *service.GroupService
	expenses  *service.ExpenseService
	dashboard *service.DashboardService
	jwt       *auth.JWTManager
}

// NewServer creates a Server.
func NewServer(
	authSvc *service.AuthService,
	groupSvc *service.GroupService,
	expenseSvc *service.ExpenseService,
	dashboardSvc *service.DashboardService,
	jwt *auth.JWTManager,
) *Server {
	return &Server{
		auth:      authSvc,
		groups:    groupSvc,
		expenses:  expenseSvc,
		dashboard: dashboardSvc,
		jwt:       jwt,
	}
}

// Routes builds the full handler stack: method-and-pattern routing, bearer
// auth on everything except registration, login and the operational
// endpoints, then request logging and metrics on the outside.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(s.jwt)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.Handle("POST /api/groups", requireAuth(http.HandlerFunc(s.handleCreateGroup)))
	mux.Handle("GET /api/groups", requireAuth(http.HandlerFunc(s.handleGetUserGroups)))
	mux.Handle("GET /api/groups/{id}", requireAuth(http.HandlerFunc(s.handleGetGroup)))
	mux.Handle("POST /api/groups/{id}/members", requireAuth(http.HandlerFunc(s.handleAddMember)))
	mux.Handle("GET /api/groups/{id}/expenses", requireAuth(http.HandlerFunc(s.handleGetGroupExpenses)))
	mux.Handle("GET /api/groups/{id}/balances", requireAuth(http.HandlerFunc(s.handleGetGroupBalances)))
	mux.Handle("POST /api/expenses", requireAuth(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /api/dashboard", requireAuth(http.HandlerFunc(s.handleGetDashboard)))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return middleware.Logging(middleware.Metrics(mux))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
