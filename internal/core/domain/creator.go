package domain

// Creator is a public creator profile with subscription tiers.
// MonthlySupporters is a derived aggregate maintained by the ledger write path when a
// tier subscription is recorded.
type Creator struct {
	CreatorID         string `json:"creatorID"` // Primary Key (UUID)
	UserID            string `json:"userID"`    // FK -> users.user_id
	Handle            string `json:"handle"`    // Unique
	Name              string `json:"name"`
	AvatarURL         string `json:"avatarURL"`
	BannerURL         string `json:"bannerURL"`
	Bio               string `json:"bio"`
	FollowersCount    int64  `json:"followersCount"`
	MonthlySupporters int64  `json:"monthlySupporters"` // Derived aggregate
	TipsTotalCents    int64  `json:"tipsTotalCents"`
	Tiers             []Tier `json:"tiers,omitempty"` // Loaded separately
	AuditFields
}

// Tier is a priced subscription level offered by a creator.
type Tier struct {
	TierID     string   `json:"tierID"`    // Primary Key (UUID)
	CreatorID  string   `json:"creatorID"` // FK -> creators.creator_id
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"` // Monthly, minor currency units
	Perks      []string `json:"perks"`
	Position   int      `json:"position"`
	Active     bool     `json:"active"`
	AuditFields
}
