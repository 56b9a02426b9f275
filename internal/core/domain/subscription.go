package domain

import "time"

// SubscriptionStatus is the lifecycle state of a membership record.
type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "TRIAL"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// TrialPeriod and ActivePeriod are the membership windows granted at subscribe time.
const (
	TrialPeriod  = 7 * 24 * time.Hour
	ActivePeriod = 30 * 24 * time.Hour
)

// Subscription is the time-boxed membership record created as a side effect of a
// subscription ledger entry. Target is either a community or a creator tier; exactly one
// of CommunityID/TierID is set accordingly. An existing TRIAL or ACTIVE record for the
// same (user, target) is the idempotency guard against double subscription.
type Subscription struct {
	SubscriptionID   string             `json:"subscriptionID"` // Primary Key (UUID)
	UserID           string             `json:"userID"`         // FK -> users.user_id
	TargetKind       ItemKind           `json:"targetKind"`     // ItemCommunity or ItemTier
	CommunityID      *string            `json:"communityID,omitempty"`
	TierID           *string            `json:"tierID,omitempty"`
	Status           SubscriptionStatus `json:"status"`
	TrialEndsAt      *time.Time         `json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd time.Time          `json:"currentPeriodEnd"`
	AuditFields
}

// TargetID returns the ID of whichever target variant is set.
func (s Subscription) TargetID() string {
	switch s.TargetKind {
	case ItemCommunity:
		if s.CommunityID != nil {
			return *s.CommunityID
		}
	case ItemTier:
		if s.TierID != nil {
			return *s.TierID
		}
	}
	return ""
}
