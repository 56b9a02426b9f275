package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsevents "github.com/tipnest/tipnest_backend/internal/core/ports/events"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
	"github.com/tipnest/tipnest_backend/internal/utils"
)

const defaultEntriesPageSize = 20

// LedgerEventTopic is the stream that receives a record for every committed ledger entry.
const LedgerEventTopic = "ledger.entries"

// entryRecordedEvent is the payload published after a ledger write commits.
type entryRecordedEvent struct {
	Type        string          `json:"type"`
	EntryID     string          `json:"entryID"`
	UserID      string          `json:"userID"`
	Kind        string          `json:"kind"`
	AmountCents int64           `json:"amountCents"`
	Item        *domain.ItemRef `json:"item,omitempty"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// ledgerService implements the monetary write sequences and the ledger read views.
// It owns validation and the idempotency decisions; the repository owns atomicity.
type ledgerService struct {
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	articleRepo     portsrepo.ArticleRepository
	communityRepo   portsrepo.CommunityRepository
	postRepo        portsrepo.PostRepository
	creatorRepo     portsrepo.CreatorRepository
	paymentRepo     portsrepo.PaymentMethodRepository
	publisher       portsevents.Publisher
	cache           *cache.Cache
	tipMinimumCents int64
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	articleRepo portsrepo.ArticleRepository,
	communityRepo portsrepo.CommunityRepository,
	postRepo portsrepo.PostRepository,
	creatorRepo portsrepo.CreatorRepository,
	paymentRepo portsrepo.PaymentMethodRepository,
	publisher portsevents.Publisher,
	catalogCache *cache.Cache,
	tipMinimumCents int64,
) portssvc.LedgerService {
	return &ledgerService{
		ledgerRepo:      ledgerRepo,
		articleRepo:     articleRepo,
		communityRepo:   communityRepo,
		postRepo:        postRepo,
		creatorRepo:     creatorRepo,
		paymentRepo:     paymentRepo,
		publisher:       publisher,
		cache:           catalogCache,
		tipMinimumCents: tipMinimumCents,
	}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// requireUsableMethod is the gate every monetary operation passes first: without a
// registered payment method nothing is recorded, not even a free trial.
func (s *ledgerService) requireUsableMethod(ctx context.Context, userID string) error {
	usable, err := s.paymentRepo.HasUsableMethod(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check payment methods: %w", err)
	}
	if !usable {
		return apperrors.ErrPaymentMethodMissing
	}
	return nil
}

// newEntry assembles a ledger entry with fresh identity and audit state.
func newEntry(userID string, kind domain.EntryKind, amountCents int64, description string, item *domain.ItemRef) domain.LedgerEntry {
	now := time.Now()
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		Kind:        kind,
		AmountCents: amountCents,
		Description: description,
		Item:        item,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

func (s *ledgerService) RecordPurchase(ctx context.Context, userID string, articleID string) (dto.PurchaseResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	article, err := s.articleRepo.FindArticleByID(ctx, articleID)
	if err != nil {
		return dto.PurchaseResult{}, err
	}

	// Free articles need no ownership record; report them as already accessible.
	if article.PriceCents == 0 {
		return dto.PurchaseResult{Owned: true, AlreadyOwned: true}, nil
	}

	if err := s.requireUsableMethod(ctx, userID); err != nil {
		return dto.PurchaseResult{}, err
	}

	owned, err := s.ledgerRepo.HasPurchase(ctx, userID, articleID)
	if err != nil {
		return dto.PurchaseResult{}, err
	}
	if owned {
		logger.InfoContext(ctx, "Purchase short-circuited, article already owned",
			slog.String("article_id", articleID))
		return dto.PurchaseResult{Owned: true, AlreadyOwned: true}, nil
	}

	entry := newEntry(userID, domain.KindPurchase, article.PriceCents,
		fmt.Sprintf("Purchased: %s", article.Title),
		&domain.ItemRef{Kind: domain.ItemArticle, ID: articleID})
	purchase := domain.ArticlePurchase{
		PurchaseID:  uuid.NewString(),
		UserID:      userID,
		ArticleID:   articleID,
		AmountCents: article.PriceCents,
		PurchasedAt: entry.CreatedAt,
	}

	if err := s.ledgerRepo.RecordPurchase(ctx, purchase, entry); err != nil {
		// A concurrent purchase may win the unique constraint race after our pre-check.
		if errors.Is(err, apperrors.ErrAlreadyOwned) {
			return dto.PurchaseResult{Owned: true, AlreadyOwned: true}, nil
		}
		return dto.PurchaseResult{}, err
	}

	s.publishEntry(ctx, entry)
	logger.InfoContext(ctx, "Purchase recorded",
		slog.String("article_id", articleID),
		slog.Int64("amount_cents", article.PriceCents))

	return dto.PurchaseResult{Owned: true, EntryID: entry.EntryID}, nil
}

func (s *ledgerService) RecordTip(ctx context.Context, userID string, item domain.ItemRef, amountCents int64) (dto.TipResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountCents < s.tipMinimumCents {
		return dto.TipResult{}, fmt.Errorf("%w: tip must be at least %d cents",
			apperrors.ErrInvalidAmount, s.tipMinimumCents)
	}

	var title string
	switch item.Kind {
	case domain.ItemArticle:
		article, err := s.articleRepo.FindArticleByID(ctx, item.ID)
		if err != nil {
			return dto.TipResult{}, err
		}
		title = article.Title
	case domain.ItemPost:
		post, err := s.postRepo.FindPostByID(ctx, item.ID)
		if err != nil {
			return dto.TipResult{}, err
		}
		title = post.Title
	default:
		return dto.TipResult{}, fmt.Errorf("%w: tips accept only articles and posts, got %q",
			apperrors.ErrValidation, item.Kind)
	}

	if err := s.requireUsableMethod(ctx, userID); err != nil {
		return dto.TipResult{}, err
	}

	entry := newEntry(userID, domain.KindTip, amountCents,
		fmt.Sprintf("Tipped: %s", title), &item)

	counters, err := s.ledgerRepo.RecordTip(ctx, item, entry)
	if err != nil {
		return dto.TipResult{}, err
	}

	s.invalidateCatalog(ctx)
	s.publishEntry(ctx, entry)
	logger.InfoContext(ctx, "Tip recorded",
		slog.String("item_kind", string(item.Kind)),
		slog.String("item_id", item.ID),
		slog.Int64("amount_cents", amountCents))

	return dto.TipResult{
		EntryID:        entry.EntryID,
		TipsCount:      counters.TipsCount,
		TipsTotalCents: counters.TipsTotalCents,
	}, nil
}

func (s *ledgerService) RecordSubscription(ctx context.Context, userID string, communityID string, trial bool) (dto.SubscriptionResult, error) {
	community, err := s.communityRepo.FindCommunityByID(ctx, communityID)
	if err != nil {
		return dto.SubscriptionResult{}, err
	}

	target := domain.ItemRef{Kind: domain.ItemCommunity, ID: communityID}
	description := fmt.Sprintf("Subscribed to: %s", community.Name)
	if trial {
		description = fmt.Sprintf("Subscribed to: %s (Free Trial)", community.Name)
	}

	return s.recordSubscription(ctx, userID, target, trial, community.MonthlyPriceCents, description, &communityID, nil)
}

func (s *ledgerService) SubscribeToTier(ctx context.Context, userID string, tierID string) (dto.SubscriptionResult, error) {
	tier, err := s.creatorRepo.FindTierByID(ctx, tierID)
	if err != nil {
		return dto.SubscriptionResult{}, err
	}
	if !tier.Active {
		return dto.SubscriptionResult{}, fmt.Errorf("%w: tier is not open for subscription", apperrors.ErrValidation)
	}

	target := domain.ItemRef{Kind: domain.ItemTier, ID: tierID}
	description := fmt.Sprintf("Subscribed to: %s", tier.Name)

	return s.recordSubscription(ctx, userID, target, false, tier.PriceCents, description, nil, &tierID)
}

// recordSubscription is the shared write path for community and tier memberships.
func (s *ledgerService) recordSubscription(
	ctx context.Context,
	userID string,
	target domain.ItemRef,
	trial bool,
	priceCents int64,
	description string,
	communityID, tierID *string,
) (dto.SubscriptionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireUsableMethod(ctx, userID); err != nil {
		return dto.SubscriptionResult{}, err
	}

	if existing, err := s.ledgerRepo.FindActiveSubscription(ctx, userID, target); err == nil {
		logger.InfoContext(ctx, "Subscription short-circuited, membership already live",
			slog.String("target_kind", string(target.Kind)),
			slog.String("target_id", target.ID))
		return dto.SubscriptionResult{
			Joined:            true,
			AlreadySubscribed: true,
			Status:            existing.Status,
			CurrentPeriodEnd:  &existing.CurrentPeriodEnd,
		}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return dto.SubscriptionResult{}, err
	}

	now := time.Now()
	amountCents := priceCents
	status := domain.SubscriptionActive
	periodEnd := now.Add(domain.ActivePeriod)
	var trialEndsAt *time.Time
	if trial {
		amountCents = 0
		status = domain.SubscriptionTrial
		periodEnd = now.Add(domain.TrialPeriod)
		trialEndsAt = &periodEnd
	}

	entry := newEntry(userID, domain.KindSubscription, amountCents, description, &target)
	sub := domain.Subscription{
		SubscriptionID:   uuid.NewString(),
		UserID:           userID,
		TargetKind:       target.Kind,
		CommunityID:      communityID,
		TierID:           tierID,
		Status:           status,
		TrialEndsAt:      trialEndsAt,
		CurrentPeriodEnd: periodEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.RecordSubscription(ctx, sub, entry); err != nil {
		if errors.Is(err, apperrors.ErrAlreadySubscribed) {
			// Lost the partial-unique-index race to a concurrent subscribe; report
			// whatever membership won.
			result := dto.SubscriptionResult{Joined: true, AlreadySubscribed: true}
			if existing, ferr := s.ledgerRepo.FindActiveSubscription(ctx, userID, target); ferr == nil {
				result.Status = existing.Status
				result.CurrentPeriodEnd = &existing.CurrentPeriodEnd
			}
			return result, nil
		}
		return dto.SubscriptionResult{}, err
	}

	s.invalidateCatalog(ctx)
	s.publishEntry(ctx, entry)
	logger.InfoContext(ctx, "Subscription recorded",
		slog.String("target_kind", string(target.Kind)),
		slog.String("target_id", target.ID),
		slog.String("status", string(status)),
		slog.Int64("amount_cents", amountCents))

	return dto.SubscriptionResult{
		Joined:           true,
		Status:           status,
		CurrentPeriodEnd: &periodEnd,
		EntryID:          entry.EntryID,
	}, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntriesPageSize
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		return dto.ListEntriesResponse{}, err
	}

	return dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *ledgerService) GetWalletSummary(ctx context.Context, userID string) (dto.WalletSummaryResponse, error) {
	totals, err := s.ledgerRepo.SumAmountsByKind(ctx, userID)
	if err != nil {
		return dto.WalletSummaryResponse{}, err
	}

	purchases := totals[domain.KindPurchase]
	tips := totals[domain.KindTip]
	subscriptions := totals[domain.KindSubscription]

	return dto.WalletSummaryResponse{
		PurchasesTotal:     utils.FormatCents(purchases),
		TipsTotal:          utils.FormatCents(tips),
		SubscriptionsTotal: utils.FormatCents(subscriptions),
		Total:              utils.FormatCents(purchases + tips + subscriptions),
	}, nil
}

// invalidateCatalog bumps the catalog cache version after a committed write that changed
// item counters, so the next catalog read reloads them. Purchases change no counters and
// skip this. The commit already happened, so a failed bump is logged, not returned.
func (s *ledgerService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "Failed to invalidate catalog cache",
			slog.String("error", err.Error()))
	}
}

// publishEntry emits the committed entry to the event stream. Failures are logged and
// swallowed: the database commit is the source of truth, the stream is a follower.
func (s *ledgerService) publishEntry(ctx context.Context, entry domain.LedgerEntry) {
	if s.publisher == nil {
		return
	}
	event := entryRecordedEvent{
		Type:        "entry.recorded",
		EntryID:     entry.EntryID,
		UserID:      entry.UserID,
		Kind:        string(entry.Kind),
		AmountCents: entry.AmountCents,
		Item:        entry.Item,
		RecordedAt:  entry.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, LedgerEventTopic, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "Failed to publish ledger event",
			slog.String("entry_id", entry.EntryID),
			slog.String("error", err.Error()))
	}
}
