package services

import (
	"context"

	"github.com/tipnest/tipnest_backend/internal/dto"
)

// ArticleService serves the premium article catalog.
// viewerID is empty for anonymous requests.
type ArticleService interface {
	ListArticles(ctx context.Context, viewerID string, params dto.ListArticlesParams) (dto.ListArticlesResponse, error)
	GetArticleByID(ctx context.Context, viewerID string, articleID string) (dto.ArticleResponse, error)
	GetArticleBySlug(ctx context.Context, viewerID string, slug string) (dto.ArticleResponse, error)
	CreateArticle(ctx context.Context, authorID string, req dto.CreateArticleRequest) (dto.ArticleResponse, error)
}

// CommunityService serves the community catalog.
type CommunityService interface {
	ListCommunities(ctx context.Context, viewerID string, params dto.ListCommunitiesParams) (dto.ListCommunitiesResponse, error)
	GetCommunityByID(ctx context.Context, viewerID string, communityID string) (dto.CommunityResponse, error)
	GetCommunityBySlug(ctx context.Context, viewerID string, slug string) (dto.CommunityResponse, error)
}

// PostService serves the creator post feed.
type PostService interface {
	ListFeed(ctx context.Context, params dto.ListFeedParams) (dto.ListFeedResponse, error)
	GetPostByID(ctx context.Context, postID string) (dto.PostResponse, error)
	CreatePost(ctx context.Context, creatorID string, req dto.CreatePostRequest) (dto.PostResponse, error)
	// RecordView bumps the post's view counter. Best effort; callers ignore failures.
	RecordView(ctx context.Context, postID string) error
}

// CreatorService serves creator profiles and their tier catalogs.
type CreatorService interface {
	GetCreatorByID(ctx context.Context, creatorID string) (dto.CreatorResponse, error)
	GetCreatorByHandle(ctx context.Context, handle string) (dto.CreatorResponse, error)
	ListTiers(ctx context.Context, creatorID string) ([]dto.TierResponse, error)
}
