// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/settlr/settlr/internal/models"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateMember is returned when an insert would violate the
	// unique (group, user) membership constraint.
	ErrDuplicateMember = errors.New("user is already a member of this group")

	// ErrEmailTaken is returned when a user insert would violate the
	// unique email constraint.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrNoSplits is returned when an expense is submitted without any
	// splits. An expense must never exist without at least one split.
	ErrNoSplits = errors.New("expense must have at least one split")
)

// Store defines the entity-store contract the ledger depends on.
// Implementations must guarantee that the compound writes (group plus
// creator membership, expense plus splits) are atomic: either every row
// becomes visible or none do. Concurrent conflicting writes are rejected
// via constraints, never silently merged.
type Store interface {
	// CreateUser persists a new user and populates user.ID.
	// Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by id. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailExists reports whether a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateGroup persists a new group together with its creator's
	// membership in a single transaction and populates group.ID.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroupWithMembers retrieves a group and its full membership list
	// (join order), with member display fields materialized.
	GetGroupWithMembers(ctx context.Context, groupID int64) (*models.Group, error)

	// GetUserGroups lists every group the user is a member of, each with
	// its membership list materialized.
	GetUserGroups(ctx context.Context, userID int64) ([]models.Group, error)

	// AddGroupMember joins a user to a group.
	// Returns ErrDuplicateMember if the user is already a member.
	AddGroupMember(ctx context.Context, groupID, userID int64) error

	// IsUserMemberOfGroup reports whether the user currently belongs
	// to the group.
	IsUserMemberOfGroup(ctx context.Context, userID, groupID int64) (bool, error)

	// GetGroupMembers lists a group's members in join order.
	GetGroupMembers(ctx context.Context, groupID int64) ([]models.GroupMember, error)

	// DeleteGroup removes a group and cascades to its memberships,
	// expenses and splits in a single transaction.
	DeleteGroup(ctx context.Context, groupID int64) error

	// CreateExpense persists an expense together with all its splits in a
	// single transaction and populates expense.ID. Returns ErrNoSplits if
	// the expense carries no splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpenseWithSplits retrieves an expense with its splits and
	// display fields materialized. Returns ErrNotFound if absent.
	GetExpenseWithSplits(ctx context.Context, expenseID int64) (*models.Expense, error)

	// GetGroupExpenses lists a group's expenses, newest first, each with
	// splits materialized.
	GetGroupExpenses(ctx context.Context, groupID int64) ([]models.Expense, error)

	// GetUserExpenses lists every expense the user paid or holds a split
	// in, newest first, regardless of current membership.
	GetUserExpenses(ctx context.Context, userID int64) ([]models.Expense, error)

	// DeleteExpense removes an expense and cascades to its splits.
	DeleteExpense(ctx context.Context, expenseID int64) error

	// Close releases any resources held by the store.
	Close() error
}
