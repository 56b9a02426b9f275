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
)

type PgxCreatorRepository struct {
	db *pgxpool.Pool
}

func newPgxCreatorRepository(db *pgxpool.Pool) portsrepo.CreatorRepository {
	return &PgxCreatorRepository{db: db}
}

var _ portsrepo.CreatorRepository = (*PgxCreatorRepository)(nil)

const creatorColumns = `
	creator_id, user_id, handle, name, avatar_url, banner_url, bio,
	followers_count, monthly_supporters, tips_total_cents,
	created_at, created_by, last_updated_at, last_updated_by
`

const tierColumns = `
	tier_id, creator_id, name, price_cents, perks, position, active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCreator(row pgx.Row) (models.Creator, error) {
	var m models.Creator
	err := row.Scan(
		&m.CreatorID, &m.UserID, &m.Handle, &m.Name, &m.AvatarURL, &m.BannerURL, &m.Bio,
		&m.FollowersCount, &m.MonthlySupporters, &m.TipsTotalCents,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanTier(row pgx.Row) (models.Tier, error) {
	var m models.Tier
	err := row.Scan(
		&m.TierID, &m.CreatorID, &m.Name, &m.PriceCents, &m.Perks, &m.Position, &m.Active,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCreatorRepository) FindCreatorByID(ctx context.Context, creatorID string) (*domain.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE creator_id = $1;`
	m, err := scanCreator(r.db.QueryRow(ctx, query, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creator %s: %w", creatorID, err)
	}
	creator := mapping.ToDomainCreator(m)
	return &creator, nil
}

func (r *PgxCreatorRepository) FindCreatorByHandle(ctx context.Context, handle string) (*domain.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE handle = $1;`
	m, err := scanCreator(r.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creator by handle %s: %w", handle, err)
	}
	creator := mapping.ToDomainCreator(m)
	return &creator, nil
}

func (r *PgxCreatorRepository) ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	query := `SELECT ` + tierColumns + ` FROM subscription_tiers WHERE creator_id = $1 ORDER BY position;`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}
	defer rows.Close()

	var ms []models.Tier
	for rows.Next() {
		m, err := scanTier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tier: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapping.ToDomainTierSlice(ms), nil
}

func (r *PgxCreatorRepository) FindTierByID(ctx context.Context, tierID string) (*domain.Tier, error) {
	query := `SELECT ` + tierColumns + ` FROM subscription_tiers WHERE tier_id = $1;`
	m, err := scanTier(r.db.QueryRow(ctx, query, tierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tier %s: %w", tierID, err)
	}
	tier := mapping.ToDomainTier(m)
	return &tier, nil
}
