package repositories

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindUserByProviderID looks up an OAuth user by the external subject ID.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}
