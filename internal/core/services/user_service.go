package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
	"github.com/tipnest/tipnest_backend/internal/platform/config"
	"github.com/tipnest/tipnest_backend/internal/utils"
)

// userService manages accounts and password authentication.
type userService struct {
	userRepo portsrepo.UserRepository
	cfg      *config.Config
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, cfg *config.Config) portssvc.UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

var _ portssvc.UserService = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return dto.UserResponse{}, fmt.Errorf("%w: username already taken", apperrors.ErrDuplicate)
		}
		return dto.UserResponse{}, err
	}

	logger.InfoContext(ctx, "User registered", slog.String("user_id", user.UserID))
	return dto.ToUserResponse(&user), nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.LoginResponse{}, apperrors.ErrUnauthorized
		}
		return dto.LoginResponse{}, err
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return dto.LoginResponse{}, apperrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return dto.LoginResponse{Token: token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.ToUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return dto.UserResponse{}, err
	}
	return dto.ToUserResponse(user), nil
}
