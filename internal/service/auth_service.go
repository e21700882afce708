package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/settlr/settlr/internal/auth"
	"github.com/settlr/settlr/internal/models"
	"github.com/settlr/settlr/internal/storage"
)

// AuthService handles user registration and login. It hashes credentials
// with bcrypt and returns a signed session token; everything past token
// verification is out of its hands.
type AuthService struct {
	store storage.Store
	jwt   *auth.JWTManager
}

// NewAuthService creates an AuthService backed by the given store and
// token manager.
func NewAuthService(store storage.Store, jwt *auth.JWTManager) *AuthService {
	return &AuthService{store: store, jwt: jwt}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns a token so the user is logged
// in immediately after signup.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) Response[*AuthResponse] {
	exists, err := s.store.EmailExists(ctx, req.Email)
	if err != nil {
		slog.Error("Register: email check failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}
	if exists {
		return Fail[*AuthResponse](MsgUserAlreadyExists, http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Register: password hashing failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// The unique email constraint backstops the check above against
		// concurrent registrations.
		if err == storage.ErrEmailTaken {
			return Fail[*AuthResponse](MsgUserAlreadyExists, http.StatusBadRequest)
		}
		slog.Error("Register: user insert failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("Register: token generation failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	slog.Info("user registered", "user_id", user.ID)
	return Success(&AuthResponse{Token: token, User: toUserResponse(user)}, MsgRegistrationSuccessful)
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) Response[*AuthResponse] {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err == storage.ErrNotFound {
		return Fail[*AuthResponse](MsgInvalidCredentials, http.StatusUnauthorized)
	}
	if err != nil {
		slog.Error("Login: user lookup failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return Fail[*AuthResponse](MsgInvalidCredentials, http.StatusUnauthorized)
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		slog.Error("Login: token generation failed", "error", err)
		return Fail[*AuthResponse](MsgInternalServerError, http.StatusInternalServerError)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return Success(&AuthResponse{Token: token, User: toUserResponse(user)}, MsgLoginSuccessful)
}
