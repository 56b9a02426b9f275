package services

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/dto"
)

// PaymentMethodService manages the account's registered payment methods.
type PaymentMethodService interface {
	// AddPaymentMethod registers a method. The first method on an account
	// becomes the default.
	AddPaymentMethod(ctx context.Context, userID string, req dto.AddPaymentMethodRequest) (dto.PaymentMethodResponse, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]dto.PaymentMethodResponse, error)
}
