// Package notify delivers best-effort group event broadcasts.
//
// Notifications are fired after the triggering operation has committed and
// are never allowed to affect its outcome: one attempt, no retries, failures
// are logged by the caller and dropped.
package notify

import "context"

// Events published by the ledger services.
const (
	EventExpenseAdded = "expense.added"
	EventMemberAdded  = "member.added"
)

// Notifier broadcasts group-scoped events to interested clients. The payload
// is the same response shape returned to the synchronous caller of the
// triggering operation.
type Notifier interface {
	NotifyGroup(ctx context.Context, groupID int64, event string, payload any) error
	Close() error
}

// Nop is a Notifier that drops every event. Used when no broker is configured
// and in tests.
type Nop struct{}

func (Nop) NotifyGroup(ctx context.Context, groupID int64, event string, payload any) error {
	return nil
}

func (Nop) Close() error { return nil }
