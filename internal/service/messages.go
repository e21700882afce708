package service

// Client-visible messages carried in the Response envelope.
const (
	// Auth
	MsgRegistrationSuccessful = "User registered successfully"
	MsgLoginSuccessful        = "Login successful"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgUserAlreadyExists      = "User with this email already exists"
	MsgUserNotFound           = "User not found"

	// Groups
	MsgGroupCreatedSuccessfully = "Group created successfully"
	MsgGroupNotFound            = "Group not found"
	MsgMemberAddedSuccessfully  = "Member added to group successfully"
	MsgMemberAlreadyExists      = "User is already a member of this group"
	MsgUserNotMemberOfGroup     = "User is not a member of this group"

	// Expenses
	MsgExpenseCreatedSuccessfully = "Expense created successfully"

	// General
	MsgValidationFailed    = "Validation failed"
	MsgInternalServerError = "An error occurred while processing your request"
)
