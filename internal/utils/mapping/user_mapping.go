package mapping

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	"github.com/tipnest/tipnest_backend/internal/models"
)

// ToModelUser converts a domain User to its model.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		Name:           d.Name,
		Email:          d.Email,
		AvatarURL:      d.AvatarURL,
		Bio:            d.Bio,
		PasswordHash:   d.PasswordHash,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: d.ProviderUserID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to its domain form.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		Name:           m.Name,
		Email:          m.Email,
		AvatarURL:      m.AvatarURL,
		Bio:            m.Bio,
		PasswordHash:   m.PasswordHash,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentMethod converts a domain PaymentMethod to its model.
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		PaymentMethodID: d.PaymentMethodID,
		UserID:          d.UserID,
		Brand:           string(d.Brand),
		Last4:           d.Last4,
		IsDefault:       d.IsDefault,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to its domain form.
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		UserID:          m.UserID,
		Brand:           domain.PaymentMethodBrand(m.Brand),
		Last4:           m.Last4,
		IsDefault:       m.IsDefault,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentMethodSlice converts a slice of model payment methods.
func ToDomainPaymentMethodSlice(ms []models.PaymentMethod) []domain.PaymentMethod {
	ds := make([]domain.PaymentMethod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentMethod(m)
	}
	return ds
}
