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

type PgxCommunityRepository struct {
	db *pgxpool.Pool
}

func newPgxCommunityRepository(db *pgxpool.Pool) portsrepo.CommunityRepository {
	return &PgxCommunityRepository{db: db}
}

var _ portsrepo.CommunityRepository = (*PgxCommunityRepository)(nil)

const communityColumns = `
	community_id, owner_id, name, slug, cover_url, description,
	monthly_price_cents, members_count,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCommunity(row pgx.Row) (models.Community, error) {
	var m models.Community
	err := row.Scan(
		&m.CommunityID, &m.OwnerID, &m.Name, &m.Slug, &m.CoverURL, &m.Description,
		&m.MonthlyPriceCents, &m.MembersCount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCommunityRepository) FindCommunityByID(ctx context.Context, communityID string) (*domain.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities WHERE community_id = $1;`
	m, err := scanCommunity(r.db.QueryRow(ctx, query, communityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find community %s: %w", communityID, err)
	}
	community := mapping.ToDomainCommunity(m)
	return &community, nil
}

func (r *PgxCommunityRepository) FindCommunityBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities WHERE slug = $1;`
	m, err := scanCommunity(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find community by slug %s: %w", slug, err)
	}
	community := mapping.ToDomainCommunity(m)
	return &community, nil
}

func (r *PgxCommunityRepository) ListCommunities(ctx context.Context, limit int) ([]domain.Community, error) {
	if limit <= 0 {
		limit = 24
	}
	query := `SELECT ` + communityColumns + ` FROM communities ORDER BY members_count DESC, created_at DESC LIMIT $1;`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	defer rows.Close()

	var ms []models.Community
	for rows.Next() {
		m, err := scanCommunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan community: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapping.ToDomainCommunitySlice(ms), nil
}
