package models

// PaymentMethod maps to the payment_methods table.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	UserID          string `json:"userID"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4"`
	IsDefault       bool   `json:"isDefault"`
	AuditFields
}
