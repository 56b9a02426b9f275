package models

// Creator maps to the creators table.
type Creator struct {
	CreatorID         string `json:"creatorID"`
	UserID            string `json:"userID"`
	Handle            string `json:"handle"`
	Name              string `json:"name"`
	AvatarURL         string `json:"avatarURL"`
	BannerURL         string `json:"bannerURL"`
	Bio               string `json:"bio"`
	FollowersCount    int64  `json:"followersCount"`
	MonthlySupporters int64  `json:"monthlySupporters"`
	TipsTotalCents    int64  `json:"tipsTotalCents"`
	AuditFields
}

// Tier maps to the subscription_tiers table. Perks is stored as a text[] column.
type Tier struct {
	TierID     string   `json:"tierID"`
	CreatorID  string   `json:"creatorID"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	Perks      []string `json:"perks"`
	Position   int      `json:"position"`
	Active     bool     `json:"active"`
	AuditFields
}
