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

type PgxArticleRepository struct {
	db *pgxpool.Pool
}

func newPgxArticleRepository(db *pgxpool.Pool) portsrepo.ArticleRepository {
	return &PgxArticleRepository{db: db}
}

var _ portsrepo.ArticleRepository = (*PgxArticleRepository)(nil)

const articleColumns = `
	article_id, author_id, title, slug, thumbnail_url, excerpt, content_html,
	category, read_minutes, price_cents, tips_count,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanArticle(row pgx.Row) (models.Article, error) {
	var m models.Article
	err := row.Scan(
		&m.ArticleID, &m.AuthorID, &m.Title, &m.Slug, &m.ThumbnailURL, &m.Excerpt, &m.ContentHTML,
		&m.Category, &m.ReadMinutes, &m.PriceCents, &m.TipsCount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	m := mapping.ToModelArticle(article)
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		m.ArticleID, m.AuthorID, m.Title, m.Slug, m.ThumbnailURL, m.Excerpt, m.ContentHTML,
		m.Category, m.ReadMinutes, m.PriceCents, m.TipsCount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: article slug %q already exists", apperrors.ErrDuplicate, m.Slug)
		}
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

func (r *PgxArticleRepository) FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE article_id = $1;`
	m, err := scanArticle(r.db.QueryRow(ctx, query, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find article %s: %w", articleID, err)
	}
	article := mapping.ToDomainArticle(m)
	return &article, nil
}

func (r *PgxArticleRepository) FindArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1;`
	m, err := scanArticle(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find article by slug %s: %w", slug, err)
	}
	article := mapping.ToDomainArticle(m)
	return &article, nil
}

func (r *PgxArticleRepository) ListArticles(ctx context.Context, filter portsrepo.ArticleListFilter) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Category != "" && filter.Category != "All" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.FreeOnly {
		query += " AND price_cents = 0"
	}
	if filter.PaidOnly {
		query += " AND price_cents > 0"
	}

	switch filter.Sort {
	case portsrepo.ArticleSortMostTipped:
		query += " ORDER BY tips_count DESC, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 24
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var ms []models.Article
	for rows.Next() {
		m, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapping.ToDomainArticleSlice(ms), nil
}
