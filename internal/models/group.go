package models

// Group represents a set of people who share expenses.
// A group always has at least one member: its creator is joined
// atomically when the group is created.
type Group struct {
	// ID is the store-assigned identifier.
	ID int64

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// CreatedByID is the user who created the group. Immutable.
	CreatedByID int64

	// CreatedByName is the creator's display name, populated by join queries.
	CreatedByName string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// Members is the group's membership list in join order.
	// Populated only by queries that materialize members.
	Members []GroupMember
}

// GroupMember is the membership relation between a user and a group.
// The (group, user) pair is unique: a user cannot join the same group twice.
type GroupMember struct {
	// UserID identifies the member.
	UserID int64

	// UserName and UserEmail are the member's display fields,
	// populated by join queries.
	UserName  string
	UserEmail string

	// JoinedAt is the Unix timestamp when the user joined the group.
	// Membership lists are ordered by this field, which also fixes the
	// member ordering used by the split calculator.
	JoinedAt int64
}
