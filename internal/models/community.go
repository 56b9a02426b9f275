package models

// Community maps to the communities table.
type Community struct {
	CommunityID       string `json:"communityID"`
	OwnerID           string `json:"ownerID"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	CoverURL          string `json:"coverURL"`
	Description       string `json:"description"`
	MonthlyPriceCents int64  `json:"monthlyPriceCents"`
	MembersCount      int64  `json:"membersCount"`
	AuditFields
}
