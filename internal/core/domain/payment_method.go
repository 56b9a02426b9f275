package domain

// PaymentMethodBrand identifies the card network or wallet behind a payment method.
type PaymentMethodBrand string

const (
	BrandVisa       PaymentMethodBrand = "VISA"
	BrandMastercard PaymentMethodBrand = "MC"
	BrandAmex       PaymentMethodBrand = "AMEX"
	BrandApplePay   PaymentMethodBrand = "APPLE_PAY"
	BrandGooglePay  PaymentMethodBrand = "GOOGLE_PAY"
)

// PaymentMethod is a registered way for an account to pay. The ledger only ever asks
// "does the account have at least one" before a purchase; registration/removal is owned
// by the payment-methods module.
type PaymentMethod struct {
	PaymentMethodID string             `json:"paymentMethodID"` // Primary Key (UUID)
	UserID          string             `json:"userID"`          // FK -> users.user_id
	Brand           PaymentMethodBrand `json:"brand"`
	Last4           string             `json:"last4,omitempty"` // Empty for wallet brands
	IsDefault       bool               `json:"isDefault"`
	AuditFields
}
