package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/settlr/settlr/internal/auth"
	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/storage"
	"github.com/settlr/settlr/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "service_test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
}

func createUser(t *testing.T, store storage.Store, name, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createGroup(t *testing.T, store storage.Store, name string, createdBy int64) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, CreatedByID: createdBy}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}

func addMember(t *testing.T, store storage.Store, groupID, userID int64) {
	t.Helper()
	if err := store.AddGroupMember(context.Background(), groupID, userID); err != nil {
		t.Fatalf("failed to add member %d to group %d: %v", userID, groupID, err)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

type recordedEvent struct {
	GroupID int64
	Event   string
	Payload any
}

// recordingNotifier captures group broadcasts so tests can assert on the
// fire-after-commit behavior. Notifications are sent from detached
// goroutines, so assertions go through waitForEvent.
type recordingNotifier struct {
	events chan recordedEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan recordedEvent, 16)}
}

func (n *recordingNotifier) NotifyGroup(ctx context.Context, groupID int64, event string, payload any) error {
	n.events <- recordedEvent{GroupID: groupID, Event: event, Payload: payload}
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func waitForEvent(t *testing.T, n *recordingNotifier) recordedEvent {
	t.Helper()
	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for group notification")
		return recordedEvent{}
	}
}

func assertNoEvent(t *testing.T, n *recordingNotifier) {
	t.Helper()
	select {
	case ev := <-n.events:
		t.Fatalf("unexpected notification: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func assertFailed[T any](t *testing.T, resp Response[T], wantCode int, wantMessage string) {
	t.Helper()
	if resp.Succeeded {
		t.Fatalf("expected failure, got success: %+v", resp)
	}
	if resp.ErrorCode != wantCode {
		t.Errorf("error code = %d, want %d", resp.ErrorCode, wantCode)
	}
	if resp.Message != wantMessage {
		t.Errorf("message = %q, want %q", resp.Message, wantMessage)
	}
}

func assertSucceeded[T any](t *testing.T, resp Response[T]) {
	t.Helper()
	if !resp.Succeeded {
		t.Fatalf("expected success, got failure: code=%d message=%q", resp.ErrorCode, resp.Message)
	}
	if resp.ErrorCode != http.StatusOK {
		t.Errorf("error code = %d, want %d", resp.ErrorCode, http.StatusOK)
	}
}
