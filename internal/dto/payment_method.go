package dto

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// AddPaymentMethodRequest is the body for registering a payment method.
// Last4 is required for card brands, absent for wallet brands.
type AddPaymentMethodRequest struct {
	Brand string `json:"brand" binding:"required,oneof=VISA MC AMEX APPLE_PAY GOOGLE_PAY"`
	Last4 string `json:"last4" binding:"omitempty,len=4,numeric"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4,omitempty"`
	IsDefault       bool   `json:"isDefault"`
}

// ToPaymentMethodResponse converts a domain PaymentMethod to its response DTO.
func ToPaymentMethodResponse(m *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: m.PaymentMethodID,
		Brand:           string(m.Brand),
		Last4:           m.Last4,
		IsDefault:       m.IsDefault,
	}
}

// ToPaymentMethodResponses converts a slice of domain payment methods.
func ToPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		responses[i] = ToPaymentMethodResponse(&m)
	}
	return responses
}
