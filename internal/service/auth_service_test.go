package service

import (
	"context"
	"net/http"
	"testing"
)

func TestAuthService_Register(t *testing.T) {
	store := newTestStore(t)
	svc := NewAuthService(store, newTestJWT())
	ctx := context.Background()

	resp := svc.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assertSucceeded(t, resp)
	if resp.Message != MsgRegistrationSuccessful {
		t.Errorf("message = %q, want %q", resp.Message, MsgRegistrationSuccessful)
	}
	if resp.Data.Token == "" {
		t.Error("expected a session token")
	}
	if resp.Data.User.ID == 0 {
		t.Error("expected user id to be assigned")
	}
	if resp.Data.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", resp.Data.User.Email)
	}

	t.Run("duplicate email", func(t *testing.T) {
		resp := svc.Register(ctx, RegisterRequest{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "password456",
		})
		assertFailed(t, resp, http.StatusBadRequest, MsgUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	store := newTestStore(t)
	jwtManager := newTestJWT()
	svc := NewAuthService(store, jwtManager)
	ctx := context.Background()

	registered := svc.Register(ctx, RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
	})
	assertSucceeded(t, registered)

	t.Run("valid credentials", func(t *testing.T) {
		resp := svc.Login(ctx, LoginRequest{Email: "bob@example.com", Password: "password123"})
		assertSucceeded(t, resp)
		if resp.Message != MsgLoginSuccessful {
			t.Errorf("message = %q, want %q", resp.Message, MsgLoginSuccessful)
		}

		claims, err := jwtManager.Validate(resp.Data.Token)
		if err != nil {
			t.Fatalf("returned token does not validate: %v", err)
		}
		if claims.UserID != resp.Data.User.ID {
			t.Errorf("token user id = %d, want %d", claims.UserID, resp.Data.User.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := svc.Login(ctx, LoginRequest{Email: "bob@example.com", Password: "wrong-password"})
		assertFailed(t, resp, http.StatusUnauthorized, MsgInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assertFailed(t, resp, http.StatusUnauthorized, MsgInvalidCredentials)
	})
}
