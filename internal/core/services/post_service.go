package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
)

const defaultFeedPageSize = 20

// postService serves the creator feed. Feed pages and single-post reads are cached; tip
// counters reload on the next read because ledger writes bump the cache version, while
// view counters are display-only and may lag by up to the cache TTL.
type postService struct {
	postRepo portsrepo.PostRepository
	cache    *cache.Cache
}

// NewPostService creates a new PostService.
func NewPostService(postRepo portsrepo.PostRepository, catalogCache *cache.Cache) portssvc.PostService {
	return &postService{
		postRepo: postRepo,
		cache:    catalogCache,
	}
}

var _ portssvc.PostService = (*postService)(nil)

func (s *postService) ListFeed(ctx context.Context, params dto.ListFeedParams) (dto.ListFeedResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultFeedPageSize
	}
	filter := portsrepo.PostListFilter{
		Tab:   portsrepo.FeedTab(params.Tab),
		Limit: limit,
	}
	if filter.Tab == "" {
		filter.Tab = portsrepo.FeedTrending
	}
	if params.Type != "" && params.Type != "all" {
		filter.Type = strings.ToUpper(params.Type)
	}

	key, err := s.cache.BuildKey(ctx, "catalog", "feed",
		string(filter.Tab), filter.Type, strconv.Itoa(limit))
	if err != nil {
		return dto.ListFeedResponse{}, err
	}

	var posts []domain.Post
	err = s.cache.FetchJSON(ctx, key, &posts, func(ctx context.Context) (any, error) {
		return s.postRepo.ListPosts(ctx, filter)
	})
	if err != nil {
		return dto.ListFeedResponse{}, err
	}

	return dto.ListFeedResponse{Items: dto.ToPostResponses(posts)}, nil
}

func (s *postService) GetPostByID(ctx context.Context, postID string) (dto.PostResponse, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "post", postID)
	if err != nil {
		return dto.PostResponse{}, err
	}

	var post domain.Post
	err = s.cache.FetchJSON(ctx, key, &post, func(ctx context.Context) (any, error) {
		return s.postRepo.FindPostByID(ctx, postID)
	})
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.ToPostResponse(&post), nil
}

func (s *postService) CreatePost(ctx context.Context, creatorID string, req dto.CreatePostRequest) (dto.PostResponse, error) {
	now := time.Now()
	post := domain.Post{
		PostID:          uuid.NewString(),
		CreatorID:       creatorID,
		Type:            domain.PostType(req.Type),
		Title:           req.Title,
		CoverURL:        req.CoverURL,
		Tags:            req.Tags,
		Access:          domain.PostAccess(req.Access),
		MediaURL:        req.MediaURL,
		CaptionsURL:     req.CaptionsURL,
		DurationSeconds: req.DurationSeconds,
		ArticleMarkdown: req.ArticleMarkdown,
		ReadingMinutes:  req.ReadingMinutes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.postRepo.SavePost(ctx, post); err != nil {
		return dto.PostResponse{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return dto.PostResponse{}, err
	}

	return dto.ToPostResponse(&post), nil
}

func (s *postService) RecordView(ctx context.Context, postID string) error {
	return s.postRepo.IncrementViews(ctx, postID)
}
