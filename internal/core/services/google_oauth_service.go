package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
	"github.com/tipnest/tipnest_backend/internal/platform/config"
	"github.com/tipnest/tipnest_backend/internal/utils"
)

// googleOAuthService exchanges Google authorization codes for local sessions.
// First sign-in provisions an account keyed by Google's subject ID.
type googleOAuthService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepository
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.GoogleOAuthService {
	return &googleOAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthService = (*googleOAuthService)(nil)

// AuthCodeURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for Google tokens, validates the ID
// token, provisions or retrieves the account, and issues an application JWT.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oauth2Token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return dto.LoginResponse{}, errors.New("id token missing from google token response")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	providerUserID := payload.Subject
	if email == "" || providerUserID == "" {
		return dto.LoginResponse{}, errors.New("essential claims missing from google ID token")
	}

	user, err := s.findOrCreateUser(ctx, name, email, picture, providerUserID)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	logger.InfoContext(ctx, "User authenticated via Google", slog.String("user_id", user.UserID))

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return dto.LoginResponse{Token: token}, nil
}

func (s *googleOAuthService) findOrCreateUser(ctx context.Context, name, email, avatarURL, providerUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Username:       usernameFromEmail(email),
		Name:           name,
		Email:          email,
		AvatarURL:      avatarURL,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Username collision with an existing local account; retry with a
			// uniquified suffix.
			newUser.Username = fmt.Sprintf("%s-%s", newUser.Username, newUser.UserID[:8])
			if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
				return nil, err
			}
			return &newUser, nil
		}
		return nil, err
	}
	return &newUser, nil
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToLower(local)
}
