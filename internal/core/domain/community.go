package domain

// Community is a subscribable group owned by a creator. MembersCount is a derived
// aggregate maintained exclusively by the ledger write path.
type Community struct {
	CommunityID       string `json:"communityID"` // Primary Key (UUID)
	OwnerID           string `json:"ownerID"`     // FK -> users.user_id
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	CoverURL          string `json:"coverURL"`
	Description       string `json:"description"`
	MonthlyPriceCents int64  `json:"monthlyPriceCents"`
	MembersCount      int64  `json:"membersCount"` // Derived aggregate
	AuditFields
}
