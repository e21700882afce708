package models

// User represents a registered user account.
type User struct {
	// ID is the store-assigned identifier.
	ID int64

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique across all users).
	// Used for login and for inviting the user into groups.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed through the API.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
