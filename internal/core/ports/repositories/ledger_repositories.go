package repositories

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// TipCounters is the post-increment counter state returned by a tip write so callers can
// surface the authoritative values without a follow-up read.
type TipCounters struct {
	TipsCount      int64
	TipsTotalCents int64 // Zero for items without a running total
}

// LedgerWriter defines the three monetary write sequences. Each implementation MUST make
// the ledger entry, the side-effect record, and the aggregate counter update visible
// atomically: either all commit or none do. Counter updates must be serialized per item
// (in-place SQL increments under the row lock, never read-then-write across calls).
type LedgerWriter interface {
	// RecordPurchase persists the ownership record and its purchase ledger entry.
	// Returns apperrors.ErrAlreadyOwned if the (user, article) ownership already exists.
	RecordPurchase(ctx context.Context, purchase domain.ArticlePurchase, entry domain.LedgerEntry) error

	// RecordTip persists a tip ledger entry against the item and atomically bumps the
	// item's tip counters, returning the post-increment values.
	// Returns apperrors.ErrNotFound if the item row does not exist.
	RecordTip(ctx context.Context, item domain.ItemRef, entry domain.LedgerEntry) (TipCounters, error)

	// RecordSubscription persists the membership record and its subscription ledger
	// entry, and atomically bumps the target's member/supporter counter.
	// Returns apperrors.ErrAlreadySubscribed if a TRIAL or ACTIVE membership exists.
	RecordSubscription(ctx context.Context, sub domain.Subscription, entry domain.LedgerEntry) error
}

// LedgerReader defines read operations over the immutable entry set.
type LedgerReader interface {
	// ListEntriesByUser retrieves a page of the user's ledger entries in reverse
	// chronological order using token-based pagination.
	ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumAmountsByKind totals the user's entry amounts grouped by entry kind.
	SumAmountsByKind(ctx context.Context, userID string) (map[domain.EntryKind]int64, error)

	// CountTipEntriesForItem counts tip entries referencing an item. Exists so the
	// derived-counter invariant can be audited against the source of truth.
	CountTipEntriesForItem(ctx context.Context, item domain.ItemRef) (int64, error)
}

// OwnershipReader resolves the idempotency guards and per-user access flags.
type OwnershipReader interface {
	// HasPurchase reports whether an ownership record exists for (user, article).
	HasPurchase(ctx context.Context, userID, articleID string) (bool, error)

	// FindActiveSubscription returns the user's TRIAL or ACTIVE membership for the
	// target, or apperrors.ErrNotFound if none exists.
	FindActiveSubscription(ctx context.Context, userID string, target domain.ItemRef) (*domain.Subscription, error)

	// ListPurchasedArticleIDs returns IDs of all articles the user owns.
	ListPurchasedArticleIDs(ctx context.Context, userID string) ([]string, error)

	// ListSubscribedCommunityIDs returns IDs of communities where the user holds a
	// TRIAL or ACTIVE membership.
	ListSubscribedCommunityIDs(ctx context.Context, userID string) ([]string, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
	OwnershipReader
}
