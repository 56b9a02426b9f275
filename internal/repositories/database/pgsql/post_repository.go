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

type PgxPostRepository struct {
	db *pgxpool.Pool
}

func newPgxPostRepository(db *pgxpool.Pool) portsrepo.PostRepository {
	return &PgxPostRepository{db: db}
}

var _ portsrepo.PostRepository = (*PgxPostRepository)(nil)

const postColumns = `
	post_id, creator_id, type, title, cover_url, tags, access,
	media_url, captions_url, duration_seconds, article_markdown, reading_minutes,
	views, tips_count, tips_total_cents,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPost(row pgx.Row) (models.Post, error) {
	var m models.Post
	err := row.Scan(
		&m.PostID, &m.CreatorID, &m.Type, &m.Title, &m.CoverURL, &m.Tags, &m.Access,
		&m.MediaURL, &m.CaptionsURL, &m.DurationSeconds, &m.ArticleMarkdown, &m.ReadingMinutes,
		&m.Views, &m.TipsCount, &m.TipsTotalCents,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	m := mapping.ToModelPost(post)
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db.Exec(ctx, query,
		m.PostID, m.CreatorID, m.Type, m.Title, m.CoverURL, m.Tags, m.Access,
		m.MediaURL, m.CaptionsURL, m.DurationSeconds, m.ArticleMarkdown, m.ReadingMinutes,
		m.Views, m.TipsCount, m.TipsTotalCents,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *PgxPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1;`
	m, err := scanPost(r.db.QueryRow(ctx, query, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post %s: %w", postID, err)
	}
	post := mapping.ToDomainPost(m)
	return &post, nil
}

func (r *PgxPostRepository) ListPosts(ctx context.Context, filter portsrepo.PostListFilter) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []any{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	switch filter.Tab {
	case portsrepo.FeedLatest:
		query += " ORDER BY created_at DESC"
	default:
		// Trending weighs tip money over raw views.
		query += " ORDER BY tips_total_cents DESC, views DESC, created_at DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var ms []models.Post
	for rows.Next() {
		m, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mapping.ToDomainPostSlice(ms), nil
}

func (r *PgxPostRepository) IncrementViews(ctx context.Context, postID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE posts SET views = views + 1 WHERE post_id = $1;`, postID)
	if err != nil {
		return fmt.Errorf("failed to increment post views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
