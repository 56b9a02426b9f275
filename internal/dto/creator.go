package dto

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// TierResponse defines the data returned for a subscription tier.
type TierResponse struct {
	TierID     string   `json:"tierID"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	Perks      []string `json:"perks"`
	Position   int      `json:"position"`
	Active     bool     `json:"active"`
}

// CreatorResponse defines the data returned for a creator profile.
type CreatorResponse struct {
	CreatorID         string         `json:"creatorID"`
	Handle            string         `json:"handle"`
	Name              string         `json:"name"`
	AvatarURL         string         `json:"avatarURL"`
	BannerURL         string         `json:"bannerURL,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	FollowersCount    int64          `json:"followersCount"`
	MonthlySupporters int64          `json:"monthlySupporters"`
	TipsTotalCents    int64          `json:"tipsTotalCents"`
	Tiers             []TierResponse `json:"tiers"`
}

// ToTierResponse converts a domain Tier to its response DTO.
func ToTierResponse(t *domain.Tier) TierResponse {
	return TierResponse{
		TierID:     t.TierID,
		Name:       t.Name,
		PriceCents: t.PriceCents,
		Perks:      t.Perks,
		Position:   t.Position,
		Active:     t.Active,
	}
}

// ToCreatorResponse converts a domain Creator and its tiers to a response DTO.
func ToCreatorResponse(c *domain.Creator) CreatorResponse {
	tiers := make([]TierResponse, len(c.Tiers))
	for i, t := range c.Tiers {
		tiers[i] = ToTierResponse(&t)
	}
	return CreatorResponse{
		CreatorID:         c.CreatorID,
		Handle:            c.Handle,
		Name:              c.Name,
		AvatarURL:         c.AvatarURL,
		BannerURL:         c.BannerURL,
		Bio:               c.Bio,
		FollowersCount:    c.FollowersCount,
		MonthlySupporters: c.MonthlySupporters,
		TipsTotalCents:    c.TipsTotalCents,
		Tiers:             tiers,
	}
}
