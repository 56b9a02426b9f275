package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	"github.com/tipnest/tipnest_backend/internal/models"
	"github.com/tipnest/tipnest_backend/internal/utils/mapping"
	"github.com/tipnest/tipnest_backend/internal/utils/pagination"
)

// PgxLedgerRepository implements the ledger write sequences over Postgres. Every write
// runs in a single transaction: the entry insert, the side-effect record and the in-place
// counter increments commit together or roll back together.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const insertEntryQuery = `
	INSERT INTO ledger_entries (
		entry_id, user_id, kind, amount_cents, description, item_kind, item_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := tx.Exec(ctx, insertEntryQuery,
		m.EntryID,
		m.UserID,
		m.Kind,
		m.AmountCents,
		m.Description,
		m.ItemKind,
		m.ItemID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// RecordPurchase inserts the ownership record and the purchase entry atomically. The
// UNIQUE (user_id, article_id) constraint turns a concurrent double-purchase into
// apperrors.ErrAlreadyOwned instead of a second charge.
func (r *PgxLedgerRepository) RecordPurchase(ctx context.Context, purchase domain.ArticlePurchase, entry domain.LedgerEntry) error {
	return r.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		m := mapping.ToModelPurchase(purchase)
		query := `
			INSERT INTO article_purchases (purchase_id, user_id, article_id, amount_cents, purchased_at)
			VALUES ($1, $2, $3, $4, $5);
		`
		if _, err := tx.Exec(ctx, query, m.PurchaseID, m.UserID, m.ArticleID, m.AmountCents, m.PurchasedAt); err != nil {
			if isUniqueViolation(err, "") {
				return apperrors.ErrAlreadyOwned
			}
			return fmt.Errorf("failed to insert purchase %s: %w", m.PurchaseID, err)
		}
		return insertEntryTx(ctx, tx, entry)
	})
}

// RecordTip inserts the tip entry and bumps the item's counters in place. The UPDATE
// takes the row lock, so concurrent tips serialize on the item row and every increment
// lands exactly once.
func (r *PgxLedgerRepository) RecordTip(ctx context.Context, item domain.ItemRef, entry domain.LedgerEntry) (portsrepo.TipCounters, error) {
	var counters portsrepo.TipCounters
	err := r.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		switch item.Kind {
		case domain.ItemArticle:
			query := `
				UPDATE articles
				SET tips_count = tips_count + 1,
				    last_updated_at = $2, last_updated_by = $3
				WHERE article_id = $1
				RETURNING tips_count;
			`
			err := tx.QueryRow(ctx, query, item.ID, entry.LastUpdatedAt, entry.LastUpdatedBy).
				Scan(&counters.TipsCount)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrNotFound
				}
				return fmt.Errorf("failed to increment article tip counter: %w", err)
			}

		case domain.ItemPost:
			var creatorID string
			query := `
				UPDATE posts
				SET tips_count = tips_count + 1,
				    tips_total_cents = tips_total_cents + $2,
				    last_updated_at = $3, last_updated_by = $4
				WHERE post_id = $1
				RETURNING tips_count, tips_total_cents, creator_id;
			`
			err := tx.QueryRow(ctx, query, item.ID, entry.AmountCents, entry.LastUpdatedAt, entry.LastUpdatedBy).
				Scan(&counters.TipsCount, &counters.TipsTotalCents, &creatorID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrNotFound
				}
				return fmt.Errorf("failed to increment post tip counters: %w", err)
			}

			// The creator's lifetime tip total follows the post counters in the
			// same transaction.
			creatorQuery := `
				UPDATE creators
				SET tips_total_cents = tips_total_cents + $2,
				    last_updated_at = $3, last_updated_by = $4
				WHERE creator_id = $1;
			`
			if _, err := tx.Exec(ctx, creatorQuery, creatorID, entry.AmountCents, entry.LastUpdatedAt, entry.LastUpdatedBy); err != nil {
				return fmt.Errorf("failed to increment creator tip total: %w", err)
			}

		default:
			return fmt.Errorf("%w: item kind %q is not tippable", apperrors.ErrValidation, item.Kind)
		}

		return insertEntryTx(ctx, tx, entry)
	})
	if err != nil {
		return portsrepo.TipCounters{}, err
	}
	return counters, nil
}

// RecordSubscription inserts the membership record, bumps the target's member counter
// and inserts the subscription entry atomically. Partial unique indexes over live
// memberships turn a concurrent double-subscribe into apperrors.ErrAlreadySubscribed.
func (r *PgxLedgerRepository) RecordSubscription(ctx context.Context, sub domain.Subscription, entry domain.LedgerEntry) error {
	return r.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		m := mapping.ToModelSubscription(sub)
		query := `
			INSERT INTO subscriptions (
				subscription_id, user_id, target_kind, community_id, tier_id, status,
				trial_ends_at, current_period_end,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, query,
			m.SubscriptionID,
			m.UserID,
			m.TargetKind,
			m.CommunityID,
			m.TierID,
			m.Status,
			m.TrialEndsAt,
			m.CurrentPeriodEnd,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err, "") {
				return apperrors.ErrAlreadySubscribed
			}
			return fmt.Errorf("failed to insert subscription %s: %w", m.SubscriptionID, err)
		}

		switch sub.TargetKind {
		case domain.ItemCommunity:
			tag, err := tx.Exec(ctx, `
				UPDATE communities
				SET members_count = members_count + 1,
				    last_updated_at = $2, last_updated_by = $3
				WHERE community_id = $1;
			`, sub.TargetID(), sub.LastUpdatedAt, sub.LastUpdatedBy)
			if err != nil {
				return fmt.Errorf("failed to increment community member counter: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrNotFound
			}

		case domain.ItemTier:
			tag, err := tx.Exec(ctx, `
				UPDATE creators
				SET monthly_supporters = monthly_supporters + 1,
				    last_updated_at = $2, last_updated_by = $3
				WHERE creator_id = (SELECT creator_id FROM subscription_tiers WHERE tier_id = $1);
			`, sub.TargetID(), sub.LastUpdatedAt, sub.LastUpdatedBy)
			if err != nil {
				return fmt.Errorf("failed to increment creator supporter counter: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrNotFound
			}

		default:
			return fmt.Errorf("%w: subscription target kind %q", apperrors.ErrValidation, sub.TargetKind)
		}

		return insertEntryTx(ctx, tx, entry)
	})
}

func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `
		SELECT entry_id, user_id, kind, amount_cents, description, item_kind, item_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE user_id = $1
	`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid pagination token")
		}
		// Row comparison keeps entries sharing a created_at from being skipped at
		// a page boundary.
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, cursorTime, cursorID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, entry_id DESC LIMIT %d", limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID, &m.UserID, &m.Kind, &m.AmountCents, &m.Description,
			&m.ItemKind, &m.ItemID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading ledger entries: %w", err)
	}

	var token *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		token = &t
	}

	return mapping.ToDomainLedgerEntrySlice(modelEntries), token, nil
}

func (r *PgxLedgerRepository) SumAmountsByKind(ctx context.Context, userID string) (map[domain.EntryKind]int64, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT kind, COALESCE(SUM(amount_cents), 0)
		FROM ledger_entries
		WHERE user_id = $1
		GROUP BY kind;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger amounts: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.EntryKind]int64)
	for rows.Next() {
		var kind string
		var total int64
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("failed to scan ledger totals: %w", err)
		}
		totals[domain.EntryKind(kind)] = total
	}
	return totals, rows.Err()
}

func (r *PgxLedgerRepository) CountTipEntriesForItem(ctx context.Context, item domain.ItemRef) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE kind = $1 AND item_kind = $2 AND item_id = $3;
	`, string(domain.KindTip), string(item.Kind), item.ID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tip entries: %w", err)
	}
	return count, nil
}

func (r *PgxLedgerRepository) HasPurchase(ctx context.Context, userID, articleID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM article_purchases WHERE user_id = $1 AND article_id = $2
		);
	`, userID, articleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article ownership: %w", err)
	}
	return exists, nil
}

func (r *PgxLedgerRepository) FindActiveSubscription(ctx context.Context, userID string, target domain.ItemRef) (*domain.Subscription, error) {
	targetColumn := "community_id"
	if target.Kind == domain.ItemTier {
		targetColumn = "tier_id"
	}
	query := fmt.Sprintf(`
		SELECT subscription_id, user_id, target_kind, community_id, tier_id, status,
		       trial_ends_at, current_period_end,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM subscriptions
		WHERE user_id = $1 AND %s = $2 AND status IN ('TRIAL', 'ACTIVE');
	`, targetColumn)

	var m models.Subscription
	err := r.Pool.QueryRow(ctx, query, userID, target.ID).Scan(
		&m.SubscriptionID, &m.UserID, &m.TargetKind, &m.CommunityID, &m.TierID, &m.Status,
		&m.TrialEndsAt, &m.CurrentPeriodEnd,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	sub := mapping.ToDomainSubscription(m)
	return &sub, nil
}

func (r *PgxLedgerRepository) ListPurchasedArticleIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT article_id FROM article_purchases WHERE user_id = $1;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchased articles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgxLedgerRepository) ListSubscribedCommunityIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT community_id
		FROM subscriptions
		WHERE user_id = $1 AND community_id IS NOT NULL AND status IN ('TRIAL', 'ACTIVE');
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed communities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
