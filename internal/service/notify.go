package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/settlr/settlr/internal/notify"
)

// notifyGroup fires a best-effort group broadcast after an operation has
// committed. It runs detached from the request so a slow or failing sink can
// never delay or revert the caller's already-committed result. One attempt,
// failures are logged and dropped.
func notifyGroup(notifier notify.Notifier, groupID int64, event string, payload any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := notifier.NotifyGroup(ctx, groupID, event, payload); err != nil {
			slog.Warn("group notification failed",
				"group_id", groupID,
				"event", event,
				"error", err,
			)
		}
	}()
}
