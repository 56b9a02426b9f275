package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
)

// paymentMethodService manages registered payment methods. Card numbers never reach
// this system; only the brand and last four digits are stored.
type paymentMethodService struct {
	paymentRepo portsrepo.PaymentMethodRepository
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(paymentRepo portsrepo.PaymentMethodRepository) portssvc.PaymentMethodService {
	return &paymentMethodService{paymentRepo: paymentRepo}
}

var _ portssvc.PaymentMethodService = (*paymentMethodService)(nil)

func isCardBrand(brand domain.PaymentMethodBrand) bool {
	switch brand {
	case domain.BrandVisa, domain.BrandMastercard, domain.BrandAmex:
		return true
	}
	return false
}

func (s *paymentMethodService) AddPaymentMethod(ctx context.Context, userID string, req dto.AddPaymentMethodRequest) (dto.PaymentMethodResponse, error) {
	brand := domain.PaymentMethodBrand(req.Brand)
	if isCardBrand(brand) && req.Last4 == "" {
		return dto.PaymentMethodResponse{}, fmt.Errorf("%w: card methods require the last four digits", apperrors.ErrValidation)
	}
	if !isCardBrand(brand) && req.Last4 != "" {
		return dto.PaymentMethodResponse{}, fmt.Errorf("%w: wallet methods carry no card digits", apperrors.ErrValidation)
	}

	existing, err := s.paymentRepo.ListPaymentMethodsByUser(ctx, userID)
	if err != nil {
		return dto.PaymentMethodResponse{}, err
	}

	now := time.Now()
	method := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		UserID:          userID,
		Brand:           brand,
		Last4:           req.Last4,
		IsDefault:       len(existing) == 0, // First method on the account becomes the default
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.paymentRepo.SavePaymentMethod(ctx, method); err != nil {
		return dto.PaymentMethodResponse{}, err
	}

	return dto.ToPaymentMethodResponse(&method), nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, userID string) ([]dto.PaymentMethodResponse, error) {
	methods, err := s.paymentRepo.ListPaymentMethodsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToPaymentMethodResponses(methods), nil
}
