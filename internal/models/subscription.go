package models

import "time"

// Subscription maps to the subscriptions table. Exactly one of CommunityID/TierID is set
// depending on target_kind. A partial unique index over (user_id, community_id) and
// (user_id, tier_id) WHERE status IN ('TRIAL','ACTIVE') backs the idempotency guard.
type Subscription struct {
	SubscriptionID   string     `json:"subscriptionID"`
	UserID           string     `json:"userID"`
	TargetKind       string     `json:"targetKind"`
	CommunityID      *string    `json:"communityID,omitempty"`
	TierID           *string    `json:"tierID,omitempty"`
	Status           string     `json:"status"`
	TrialEndsAt      *time.Time `json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd time.Time  `json:"currentPeriodEnd"`
	AuditFields
}
