package repositories

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// ArticleSort selects the ordering for article listings.
type ArticleSort string

const (
	ArticleSortRecent     ArticleSort = "recent"
	ArticleSortMostTipped ArticleSort = "most_tipped"
)

// ArticleListFilter narrows an article listing.
type ArticleListFilter struct {
	Search   string      // Case-insensitive title match
	Category string      // Empty or "All" means no filter
	FreeOnly bool
	PaidOnly bool
	Sort     ArticleSort
	Limit    int
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	SaveArticle(ctx context.Context, article domain.Article) error
	FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error)
	FindArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListArticles(ctx context.Context, filter ArticleListFilter) ([]domain.Article, error)
}

// CommunityRepository defines persistence operations for communities.
type CommunityRepository interface {
	FindCommunityByID(ctx context.Context, communityID string) (*domain.Community, error)
	FindCommunityBySlug(ctx context.Context, slug string) (*domain.Community, error)
	// ListCommunities returns communities ordered by members_count descending.
	ListCommunities(ctx context.Context, limit int) ([]domain.Community, error)
}

// FeedTab selects the ordering for the post feed.
type FeedTab string

const (
	FeedTrending FeedTab = "trending"
	FeedLatest   FeedTab = "latest"
)

// PostListFilter narrows a feed listing.
type PostListFilter struct {
	Tab   FeedTab
	Type  string // "", "VIDEO" or "ARTICLE"
	Limit int
}

// PostRepository defines persistence operations for feed posts.
type PostRepository interface {
	SavePost(ctx context.Context, post domain.Post) error
	FindPostByID(ctx context.Context, postID string) (*domain.Post, error)
	ListPosts(ctx context.Context, filter PostListFilter) ([]domain.Post, error)
	// IncrementViews bumps the post's view counter in place.
	IncrementViews(ctx context.Context, postID string) error
}

// CreatorRepository defines persistence operations for creators and their tiers.
type CreatorRepository interface {
	FindCreatorByID(ctx context.Context, creatorID string) (*domain.Creator, error)
	FindCreatorByHandle(ctx context.Context, handle string) (*domain.Creator, error)
	// ListTiersByCreator returns the creator's tiers ordered by position.
	ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error)
	FindTierByID(ctx context.Context, tierID string) (*domain.Tier, error)
}
