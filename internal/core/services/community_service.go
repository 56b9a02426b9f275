package services

import (
	"context"

	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
)

const defaultCommunityPageSize = 24

// communityService serves the community catalog with per-viewer membership flags.
type communityService struct {
	communityRepo portsrepo.CommunityRepository
	ledgerRepo    portsrepo.OwnershipReader
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(communityRepo portsrepo.CommunityRepository, ledgerRepo portsrepo.OwnershipReader) portssvc.CommunityService {
	return &communityService{
		communityRepo: communityRepo,
		ledgerRepo:    ledgerRepo,
	}
}

var _ portssvc.CommunityService = (*communityService)(nil)

func (s *communityService) ListCommunities(ctx context.Context, viewerID string, params dto.ListCommunitiesParams) (dto.ListCommunitiesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultCommunityPageSize
	}

	communities, err := s.communityRepo.ListCommunities(ctx, limit)
	if err != nil {
		return dto.ListCommunitiesResponse{}, err
	}

	joinedSet, err := s.joinedCommunitySet(ctx, viewerID)
	if err != nil {
		return dto.ListCommunitiesResponse{}, err
	}

	items := make([]dto.CommunityResponse, 0, len(communities))
	for _, c := range communities {
		joined := joinedSet[c.CommunityID]
		if params.Joined != nil && joined != *params.Joined {
			continue
		}
		items = append(items, dto.ToCommunityResponse(&c, joined))
	}

	return dto.ListCommunitiesResponse{Items: items}, nil
}

func (s *communityService) GetCommunityByID(ctx context.Context, viewerID string, communityID string) (dto.CommunityResponse, error) {
	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return dto.CommunityResponse{}, err
	}
	joined, err := s.isJoined(ctx, viewerID, community.CommunityID)
	if err != nil {
		return dto.CommunityResponse{}, err
	}
	return dto.ToCommunityResponse(community, joined), nil
}

func (s *communityService) GetCommunityBySlug(ctx context.Context, viewerID string, slug string) (dto.CommunityResponse, error) {
	community, err := s.communityRepo.FindCommunityBySlug(ctx, slug)
	if err != nil {
		return dto.CommunityResponse{}, err
	}
	joined, err := s.isJoined(ctx, viewerID, community.CommunityID)
	if err != nil {
		return dto.CommunityResponse{}, err
	}
	return dto.ToCommunityResponse(community, joined), nil
}

func (s *communityService) joinedCommunitySet(ctx context.Context, viewerID string) (map[string]bool, error) {
	if viewerID == "" {
		return nil, nil
	}
	ids, err := s.ledgerRepo.ListSubscribedCommunityIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *communityService) isJoined(ctx context.Context, viewerID, communityID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	set, err := s.joinedCommunitySet(ctx, viewerID)
	if err != nil {
		return false, err
	}
	return set[communityID], nil
}
