package service

import (
	"context"

	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/storage"
)

// MembershipGuard gates every group-scoped operation on current membership.
// A false result means the caller is not authorized, not that the group is
// empty; group existence is checked separately where it matters.
type MembershipGuard struct {
	store storage.Store
}

// NewMembershipGuard creates a guard backed by the given store.
func NewMembershipGuard(store storage.Store) *MembershipGuard {
	return &MembershipGuard{store: store}
}

// IsMember reports whether the user currently belongs to the group.
func (g *MembershipGuard) IsMember(ctx context.Context, userID, groupID int64) (bool, error) {
	return g.store.IsUserMemberOfGroup(ctx, userID, groupID)
}

// ListMembers returns the group's members in join order. The ordering is
// stable and reproducible; the split calculator relies on it to place the
// rounding remainder deterministically.
func (g *MembershipGuard) ListMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	return g.store.GetGroupMembers(ctx, groupID)
}
