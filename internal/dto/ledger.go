package dto

import (
	"time"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// TipRequest is the body for tipping an article or post.
type TipRequest struct {
	AmountCents int64 `json:"amountCents" binding:"required,gt=0"`
}

// SubscribeRequest is the body for subscribing to a community.
type SubscribeRequest struct {
	Trial bool `json:"trial"`
}

// PurchaseResult reports the outcome of a purchase. AlreadyOwned is true when the
// idempotency guard short-circuited and no new charge was made.
type PurchaseResult struct {
	Owned        bool   `json:"owned"`
	AlreadyOwned bool   `json:"alreadyOwned"`
	EntryID      string `json:"entryID,omitempty"` // Empty on short-circuit
}

// TipResult reports the authoritative post-increment counters.
type TipResult struct {
	EntryID        string `json:"entryID"`
	TipsCount      int64  `json:"tipsCount"`
	TipsTotalCents int64  `json:"tipsTotalCents,omitempty"`
}

// SubscriptionResult reports the outcome of a subscription. AlreadySubscribed is true
// when the idempotency guard short-circuited.
type SubscriptionResult struct {
	Joined            bool                      `json:"joined"`
	AlreadySubscribed bool                      `json:"alreadySubscribed"`
	Status            domain.SubscriptionStatus `json:"status,omitempty"`
	CurrentPeriodEnd  *time.Time                `json:"currentPeriodEnd,omitempty"`
	EntryID           string                    `json:"entryID,omitempty"`
}

// ListEntriesParams holds pagination parameters for the ledger history view.
type ListEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,gt=0,lte=100"`
	NextToken *string `form:"nextToken"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID     string          `json:"entryID"`
	Kind        string          `json:"kind"`
	AmountCents int64           `json:"amountCents"`
	Description string          `json:"description"`
	Item        *domain.ItemRef `json:"item,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListEntriesResponse is a page of ledger history plus the next-page token.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// WalletSummaryResponse totals the account's spending per entry kind. Amounts are
// display-unit strings derived from the int64 cent totals.
type WalletSummaryResponse struct {
	PurchasesTotal     string `json:"purchasesTotal"`
	TipsTotal          string `json:"tipsTotal"`
	SubscriptionsTotal string `json:"subscriptionsTotal"`
	Total              string `json:"total"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		Kind:        string(e.Kind),
		AmountCents: e.AmountCents,
		Description: e.Description,
		Item:        e.Item,
		CreatedAt:   e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(&e)
	}
	return responses
}
