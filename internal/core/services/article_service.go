package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
)

const defaultArticlePageSize = 24

// articleService serves the article catalog. Listings and single-article reads go
// through the catalog cache; per-viewer ownership is resolved after the cached fetch so
// cached payloads stay viewer-independent.
type articleService struct {
	articleRepo portsrepo.ArticleRepository
	ledgerRepo  portsrepo.OwnershipReader
	userRepo    portsrepo.UserRepository
	cache       *cache.Cache
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articleRepo portsrepo.ArticleRepository,
	ledgerRepo portsrepo.OwnershipReader,
	userRepo portsrepo.UserRepository,
	catalogCache *cache.Cache,
) portssvc.ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		cache:       catalogCache,
	}
}

var _ portssvc.ArticleService = (*articleService)(nil)

func (s *articleService) ListArticles(ctx context.Context, viewerID string, params dto.ListArticlesParams) (dto.ListArticlesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultArticlePageSize
	}
	filter := portsrepo.ArticleListFilter{
		Search:   params.Search,
		Category: params.Category,
		FreeOnly: params.Price == "free",
		PaidOnly: params.Price == "paid",
		Sort:     portsrepo.ArticleSort(params.Sort),
		Limit:    limit,
	}
	if filter.Sort == "" {
		filter.Sort = portsrepo.ArticleSortRecent
	}

	key, err := s.cache.BuildKey(ctx, "catalog", "articles",
		params.Search, params.Category, params.Price, string(filter.Sort), strconv.Itoa(limit))
	if err != nil {
		return dto.ListArticlesResponse{}, err
	}

	var articles []domain.Article
	err = s.cache.FetchJSON(ctx, key, &articles, func(ctx context.Context) (any, error) {
		return s.articleRepo.ListArticles(ctx, filter)
	})
	if err != nil {
		return dto.ListArticlesResponse{}, err
	}

	ownedSet, err := s.ownedArticleSet(ctx, viewerID)
	if err != nil {
		return dto.ListArticlesResponse{}, err
	}

	authors := map[string]*dto.AuthorResponse{}
	items := make([]dto.ArticleResponse, len(articles))
	for i, a := range articles {
		author, err := s.resolveAuthor(ctx, a.AuthorID, authors)
		if err != nil {
			return dto.ListArticlesResponse{}, err
		}
		items[i] = dto.ToArticleResponse(&a, s.isOwned(&a, viewerID, ownedSet), author)
	}

	return dto.ListArticlesResponse{Items: items}, nil
}

func (s *articleService) GetArticleByID(ctx context.Context, viewerID string, articleID string) (dto.ArticleResponse, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "article", articleID)
	if err != nil {
		return dto.ArticleResponse{}, err
	}

	var article domain.Article
	err = s.cache.FetchJSON(ctx, key, &article, func(ctx context.Context) (any, error) {
		return s.articleRepo.FindArticleByID(ctx, articleID)
	})
	if err != nil {
		return dto.ArticleResponse{}, err
	}

	return s.toViewerResponse(ctx, viewerID, &article)
}

func (s *articleService) GetArticleBySlug(ctx context.Context, viewerID string, slug string) (dto.ArticleResponse, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "article_slug", slug)
	if err != nil {
		return dto.ArticleResponse{}, err
	}

	var article domain.Article
	err = s.cache.FetchJSON(ctx, key, &article, func(ctx context.Context) (any, error) {
		return s.articleRepo.FindArticleBySlug(ctx, slug)
	})
	if err != nil {
		return dto.ArticleResponse{}, err
	}

	return s.toViewerResponse(ctx, viewerID, &article)
}

func (s *articleService) CreateArticle(ctx context.Context, authorID string, req dto.CreateArticleRequest) (dto.ArticleResponse, error) {
	now := time.Now()
	article := domain.Article{
		ArticleID:    uuid.NewString(),
		AuthorID:     authorID,
		Title:        req.Title,
		Slug:         req.Slug,
		ThumbnailURL: req.ThumbnailURL,
		Excerpt:      req.Excerpt,
		ContentHTML:  req.ContentHTML,
		Category:     req.Category,
		ReadMinutes:  req.ReadMinutes,
		PriceCents:   req.PriceCents,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}

	if err := s.articleRepo.SaveArticle(ctx, article); err != nil {
		return dto.ArticleResponse{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return dto.ArticleResponse{}, err
	}

	author, err := s.resolveAuthor(ctx, authorID, map[string]*dto.AuthorResponse{})
	if err != nil {
		return dto.ArticleResponse{}, err
	}
	return dto.ToArticleResponse(&article, true, author), nil
}

func (s *articleService) toViewerResponse(ctx context.Context, viewerID string, article *domain.Article) (dto.ArticleResponse, error) {
	owned := article.PriceCents == 0 || article.AuthorID == viewerID
	if !owned && viewerID != "" {
		var err error
		owned, err = s.ledgerRepo.HasPurchase(ctx, viewerID, article.ArticleID)
		if err != nil {
			return dto.ArticleResponse{}, err
		}
	}

	author, err := s.resolveAuthor(ctx, article.AuthorID, map[string]*dto.AuthorResponse{})
	if err != nil {
		return dto.ArticleResponse{}, err
	}
	return dto.ToArticleResponse(article, owned, author), nil
}

func (s *articleService) ownedArticleSet(ctx context.Context, viewerID string) (map[string]bool, error) {
	if viewerID == "" {
		return nil, nil
	}
	ids, err := s.ledgerRepo.ListPurchasedArticleIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *articleService) isOwned(article *domain.Article, viewerID string, ownedSet map[string]bool) bool {
	return article.PriceCents == 0 || article.AuthorID == viewerID || ownedSet[article.ArticleID]
}

func (s *articleService) resolveAuthor(ctx context.Context, authorID string, memo map[string]*dto.AuthorResponse) (*dto.AuthorResponse, error) {
	if author, ok := memo[authorID]; ok {
		return author, nil
	}
	user, err := s.userRepo.FindUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	author := &dto.AuthorResponse{ID: user.UserID, Name: user.Name, AvatarURL: user.AvatarURL}
	memo[authorID] = author
	return author, nil
}
