package api

import (
	"net/http"

	"github.com/settlr/settlr/internal/middleware"
	"github.com/settlr/settlr/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateRegister(req); err != nil {
		writeJSON(w, service.Fail[any](err.Error(), http.StatusBadRequest))
		return
	}
	writeJSON(w, s.auth.Register(r.Context(), req))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, s.auth.Login(r.Context(), req))
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateCreateGroup(req); err != nil {
		writeJSON(w, service.Fail[any](err.Error(), http.StatusBadRequest))
		return
	}
	writeJSON(w, s.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req))
}

func (s *Server) handleGetUserGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.groups.GetUserGroups(r.Context(), middleware.GetUserID(r.Context())))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.groups.GetGroupByID(r.Context(), middleware.GetUserID(r.Context()), groupID))
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateAddMember(req); err != nil {
		writeJSON(w, service.Fail[any](err.Error(), http.StatusBadRequest))
		return
	}
	writeJSON(w, s.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), groupID, req))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req service.CreateExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateCreateExpense(req); err != nil {
		writeJSON(w, service.Fail[any](err.Error(), http.StatusBadRequest))
		return
	}
	writeJSON(w, s.expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), req))
}

func (s *Server) handleGetGroupExpenses(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.expenses.GetGroupExpenses(r.Context(), middleware.GetUserID(r.Context()), groupID))
}

func (s *Server) handleGetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.expenses.GetGroupBalances(r.Context(), middleware.GetUserID(r.Context()), groupID))
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dashboard.GetDashboard(r.Context(), middleware.GetUserID(r.Context())))
}
