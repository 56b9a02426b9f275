package services

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/dto"
)

// UserService manages accounts and password authentication.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (dto.UserResponse, error)
}

// GoogleOAuthService exchanges Google authorization codes for local sessions,
// provisioning an account on first sign-in.
type GoogleOAuthService interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (dto.LoginResponse, error)
}
