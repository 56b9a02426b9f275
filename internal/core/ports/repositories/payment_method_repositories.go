package repositories

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// PaymentMethodRepository defines persistence operations for payment methods.
type PaymentMethodRepository interface {
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error

	// ListPaymentMethodsByUser returns the user's methods, newest first.
	ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)

	// HasUsableMethod reports whether the user has at least one payment method on file.
	// This is the only question the ledger ever asks of this repository.
	HasUsableMethod(ctx context.Context, userID string) (bool, error)
}
