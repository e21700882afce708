package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/notify"
	"github.com/settlr/settlr/internal/storage"
)

// GroupService manages groups: creation, lookup and adding members.
type GroupService struct {
	store    storage.Store
	guard    *MembershipGuard
	notifier notify.Notifier
}

// NewGroupService creates a GroupService.
func NewGroupService(store storage.Store, guard *MembershipGuard, notifier notify.Notifier) *GroupService {
	return &GroupService{store: store, guard: guard, notifier: notifier}
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type AddMemberRequest struct {
	UserEmail string `json:"userEmail"`
}

// CreateGroup creates a new group. The creator is joined as the first
// member in the same store transaction, so a memberless group is never
// visible.
func (s *GroupService) CreateGroup(ctx context.Context, userID int64, req CreateGroupRequest) Response[*GroupResponse] {
	group := &models.Group{Name: req.Name, CreatedByID: userID}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "user_id", userID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	full, err := s.store.GetGroupWithMembers(ctx, group.ID)
	if err != nil {
		slog.Error("CreateGroup: reload failed", "group_id", group.ID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	slog.Info("group created", "group_id", group.ID, "created_by", userID)
	return Success(toGroupResponse(full), MsgGroupCreatedSuccessfully)
}

// AddMember joins a user (looked up by email) to a group. The checks run in
// a fixed order so each failure is individually observable: group existence,
// caller authorization, target-user existence, duplicate membership.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID int64, req AddMemberRequest) Response[*GroupResponse] {
	if _, err := s.store.GetGroupWithMembers(ctx, groupID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Fail[*GroupResponse](MsgGroupNotFound, http.StatusNotFound)
		}
		slog.Error("AddMember: group lookup failed", "group_id", groupID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	isMember, err := s.guard.IsMember(ctx, userID, groupID)
	if err != nil {
		slog.Error("AddMember: membership check failed", "group_id", groupID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if !isMember {
		return Fail[*GroupResponse](MsgUserNotMemberOfGroup, http.StatusForbidden)
	}

	target, err := s.store.GetUserByEmail(ctx, req.UserEmail)
	if errors.Is(err, storage.ErrNotFound) {
		return Fail[*GroupResponse](MsgUserNotFound, http.StatusNotFound)
	}
	if err != nil {
		slog.Error("AddMember: user lookup failed", "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	if err := s.store.AddGroupMember(ctx, groupID, target.ID); err != nil {
		// The unique (group, user) constraint also catches a concurrent
		// duplicate join.
		if errors.Is(err, storage.ErrDuplicateMember) {
			return Fail[*GroupResponse](MsgMemberAlreadyExists, http.StatusBadRequest)
		}
		slog.Error("AddMember: insert failed", "group_id", groupID, "user_id", target.ID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	updated, err := s.store.GetGroupWithMembers(ctx, groupID)
	if err != nil {
		slog.Error("AddMember: reload failed", "group_id", groupID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	resp := toGroupResponse(updated)
	notifyGroup(s.notifier, groupID, notify.EventMemberAdded, resp)

	slog.Info("member added", "group_id", groupID, "user_id", target.ID, "added_by", userID)
	return Success(resp, MsgMemberAddedSuccessfully)
}

// GetUserGroups lists every group the caller belongs to.
func (s *GroupService) GetUserGroups(ctx context.Context, userID int64) Response[[]GroupResponse] {
	groups, err := s.store.GetUserGroups(ctx, userID)
	if err != nil {
		slog.Error("GetUserGroups failed", "user_id", userID, "error", err)
		return Fail[[]GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	resp := make([]GroupResponse, len(groups))
	for i := range groups {
		resp[i] = *toGroupResponse(&groups[i])
	}
	return Success(resp, "")
}

// GetGroupByID retrieves a single group with its members. Member-gated.
func (s *GroupService) GetGroupByID(ctx context.Context, userID, groupID int64) Response[*GroupResponse] {
	isMember, err := s.guard.IsMember(ctx, userID, groupID)
	if err != nil {
		slog.Error("GetGroupByID: membership check failed", "group_id", groupID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if !isMember {
		return Fail[*GroupResponse](MsgUserNotMemberOfGroup, http.StatusForbidden)
	}

	group, err := s.store.GetGroupWithMembers(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return Fail[*GroupResponse](MsgGroupNotFound, http.StatusNotFound)
	}
	if err != nil {
		slog.Error("GetGroupByID failed", "group_id", groupID, "error", err)
		return Fail[*GroupResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	return Success(toGroupResponse(group), "")
}
