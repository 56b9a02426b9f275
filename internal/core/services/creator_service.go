package services

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
)

// creatorService serves creator profiles with their tier catalogs attached.
type creatorService struct {
	creatorRepo portsrepo.CreatorRepository
}

// NewCreatorService creates a new CreatorService.
func NewCreatorService(creatorRepo portsrepo.CreatorRepository) portssvc.CreatorService {
	return &creatorService{creatorRepo: creatorRepo}
}

var _ portssvc.CreatorService = (*creatorService)(nil)

func (s *creatorService) GetCreatorByID(ctx context.Context, creatorID string) (dto.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindCreatorByID(ctx, creatorID)
	if err != nil {
		return dto.CreatorResponse{}, err
	}
	return s.withTiers(ctx, creator)
}

func (s *creatorService) GetCreatorByHandle(ctx context.Context, handle string) (dto.CreatorResponse, error) {
	creator, err := s.creatorRepo.FindCreatorByHandle(ctx, handle)
	if err != nil {
		return dto.CreatorResponse{}, err
	}
	return s.withTiers(ctx, creator)
}

func (s *creatorService) ListTiers(ctx context.Context, creatorID string) ([]dto.TierResponse, error) {
	tiers, err := s.creatorRepo.ListTiersByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TierResponse, len(tiers))
	for i, t := range tiers {
		responses[i] = dto.ToTierResponse(&t)
	}
	return responses, nil
}

func (s *creatorService) withTiers(ctx context.Context, creator *domain.Creator) (dto.CreatorResponse, error) {
	tiers, err := s.creatorRepo.ListTiersByCreator(ctx, creator.CreatorID)
	if err != nil {
		return dto.CreatorResponse{}, err
	}
	creator.Tiers = tiers
	return dto.ToCreatorResponse(creator), nil
}
