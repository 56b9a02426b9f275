package services

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	"github.com/tipnest/tipnest_backend/internal/dto"
)

// LedgerService records monetary events and serves the account's ledger views.
// All record operations are atomic: the ledger entry and every aggregate it
// touches commit together or not at all.
type LedgerService interface {
	// RecordPurchase charges the article's listed price and grants ownership.
	// Re-purchasing an owned article is a no-op reported via AlreadyOwned.
	RecordPurchase(ctx context.Context, userID string, articleID string) (dto.PurchaseResult, error)
	// RecordTip records a voluntary payment against an article or post and
	// returns the authoritative post-increment counters.
	RecordTip(ctx context.Context, userID string, item domain.ItemRef, amountCents int64) (dto.TipResult, error)
	// RecordSubscription starts a trial or paid membership on a community.
	// An existing TRIAL or ACTIVE membership short-circuits via AlreadySubscribed.
	RecordSubscription(ctx context.Context, userID string, communityID string, trial bool) (dto.SubscriptionResult, error)
	// SubscribeToTier starts a paid membership on a creator's tier.
	SubscribeToTier(ctx context.Context, userID string, tierID string) (dto.SubscriptionResult, error)
	// ListEntries returns the account's history, newest first.
	ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (dto.ListEntriesResponse, error)
	// GetWalletSummary totals the account's spending per entry kind.
	GetWalletSummary(ctx context.Context, userID string) (dto.WalletSummaryResponse, error)
}
