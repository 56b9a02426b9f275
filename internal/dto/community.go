package dto

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// CommunityResponse defines the data returned for a community.
type CommunityResponse struct {
	CommunityID       string `json:"communityID"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	CoverURL          string `json:"coverURL"`
	Description       string `json:"description"`
	MonthlyPriceCents int64  `json:"monthlyPriceCents"`
	MembersCount      int64  `json:"membersCount"`
	Joined            bool   `json:"joined"`
}

// ListCommunitiesParams holds filters for the community listing.
type ListCommunitiesParams struct {
	// Joined filters to communities the caller has (or has not) joined when set.
	Joined *bool `form:"joined"`
	Limit  int   `form:"limit" binding:"omitempty,gt=0,lte=50"`
}

// ListCommunitiesResponse is the community listing payload.
type ListCommunitiesResponse struct {
	Items []CommunityResponse `json:"items"`
}

// ToCommunityResponse converts a domain Community, resolving membership for the caller.
func ToCommunityResponse(c *domain.Community, joined bool) CommunityResponse {
	return CommunityResponse{
		CommunityID:       c.CommunityID,
		Name:              c.Name,
		Slug:              c.Slug,
		CoverURL:          c.CoverURL,
		Description:       c.Description,
		MonthlyPriceCents: c.MonthlyPriceCents,
		MembersCount:      c.MembersCount,
		Joined:            joined,
	}
}
