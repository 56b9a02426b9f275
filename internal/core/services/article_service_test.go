package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/core/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ArticleServiceTestSuite struct {
	suite.Suite
	mockArticleRepo *MockArticleRepository
	mockLedgerRepo  *MockLedgerRepository
	mockUserRepo    *MockUserRepository
	catalogCache    *cache.Cache
	service         portssvc.ArticleService
	ctx             context.Context
	author          *domain.User
}

func (suite *ArticleServiceTestSuite) SetupTest() {
	mr := miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	suite.mockArticleRepo = new(MockArticleRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.catalogCache = cache.NewCache(client, time.Minute)
	suite.service = services.NewArticleService(
		suite.mockArticleRepo,
		suite.mockLedgerRepo,
		suite.mockUserRepo,
		suite.catalogCache,
	)
	suite.ctx = context.Background()
	suite.author = &domain.User{UserID: uuid.NewString(), Name: "Maya Chen"}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.author.UserID).Return(suite.author, nil)
}

func (suite *ArticleServiceTestSuite) newArticle(priceCents int64) domain.Article {
	return domain.Article{
		ArticleID:   uuid.NewString(),
		AuthorID:    suite.author.UserID,
		Title:       "Lighting on a Budget",
		Slug:        "lighting-on-a-budget",
		ContentHTML: "<p>Full text</p>",
		Category:    "Film",
		PriceCents:  priceCents,
	}
}

// --- Test Cases ---

func (suite *ArticleServiceTestSuite) TestListArticles_SecondReadServedFromCache() {
	article := suite.newArticle(500)
	suite.mockArticleRepo.On("ListArticles", mock.Anything, mock.Anything).
		Return([]domain.Article{article}, nil).Once()

	first, err := suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)
	suite.Len(first.Items, 1)

	// No second ListArticles expectation: a repo hit here fails the suite.
	second, err := suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)
	suite.Len(second.Items, 1)
	suite.Equal(first.Items[0].ArticleID, second.Items[0].ArticleID)

	suite.mockArticleRepo.AssertExpectations(suite.T())
}

func (suite *ArticleServiceTestSuite) TestListArticles_CachePayloadIsViewerIndependent() {
	article := suite.newArticle(500)
	viewerID := uuid.NewString()
	suite.mockArticleRepo.On("ListArticles", mock.Anything, mock.Anything).
		Return([]domain.Article{article}, nil).Once()
	suite.mockLedgerRepo.On("ListPurchasedArticleIDs", suite.ctx, viewerID).
		Return([]string{article.ArticleID}, nil).Once()

	// Anonymous viewer warms the cache and does not own the paid article.
	anon, err := suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)
	suite.False(anon.Items[0].IsOwned)
	suite.Empty(anon.Items[0].ContentHTML)

	// The purchasing viewer reads the same cached payload but sees ownership.
	owned, err := suite.service.ListArticles(suite.ctx, viewerID, dto.ListArticlesParams{})
	suite.NoError(err)
	suite.True(owned.Items[0].IsOwned)
}

func (suite *ArticleServiceTestSuite) TestCreateArticle_BumpInvalidatesListings() {
	article := suite.newArticle(0)
	suite.mockArticleRepo.On("ListArticles", mock.Anything, mock.Anything).
		Return([]domain.Article{article}, nil).Twice()
	suite.mockArticleRepo.On("SaveArticle", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)

	_, err = suite.service.CreateArticle(suite.ctx, suite.author.UserID, dto.CreateArticleRequest{
		Title:       "New Piece",
		Slug:        "new-piece",
		ContentHTML: "<p>hello</p>",
		Category:    "Film",
	})
	suite.NoError(err)

	// The publish bumped the cache version, so the next listing reloads.
	_, err = suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)

	suite.mockArticleRepo.AssertExpectations(suite.T())
}

func (suite *ArticleServiceTestSuite) TestGetArticleByID_OwnershipGatesContent() {
	article := suite.newArticle(500)
	viewerID := uuid.NewString()
	suite.mockArticleRepo.On("FindArticleByID", mock.Anything, article.ArticleID).
		Return(&article, nil).Once()
	suite.mockLedgerRepo.On("HasPurchase", suite.ctx, viewerID, article.ArticleID).
		Return(false, nil).Once()

	resp, err := suite.service.GetArticleByID(suite.ctx, viewerID, article.ArticleID)

	suite.NoError(err)
	suite.False(resp.IsOwned)
	suite.Empty(resp.ContentHTML)
	suite.Equal(suite.author.UserID, resp.Author.ID)
}

func (suite *ArticleServiceTestSuite) TestGetArticleByID_FreeArticleAlwaysReadable() {
	article := suite.newArticle(0)
	suite.mockArticleRepo.On("FindArticleByID", mock.Anything, article.ArticleID).
		Return(&article, nil).Once()

	resp, err := suite.service.GetArticleByID(suite.ctx, "", article.ArticleID)

	suite.NoError(err)
	suite.True(resp.IsOwned)
	suite.Equal("<p>Full text</p>", resp.ContentHTML)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "HasPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ArticleServiceTestSuite) TestGetArticleBySlug_AuthorOwnsOwnArticle() {
	article := suite.newArticle(500)
	suite.mockArticleRepo.On("FindArticleBySlug", mock.Anything, article.Slug).
		Return(&article, nil).Once()

	resp, err := suite.service.GetArticleBySlug(suite.ctx, suite.author.UserID, article.Slug)

	suite.NoError(err)
	suite.True(resp.IsOwned)
	suite.Equal("<p>Full text</p>", resp.ContentHTML)
}

func (suite *ArticleServiceTestSuite) TestListArticles_NilCacheFallsThroughToRepo() {
	article := suite.newArticle(0)
	repo := new(MockArticleRepository)
	repo.On("ListArticles", mock.Anything, mock.Anything).
		Return([]domain.Article{article}, nil).Twice()

	service := services.NewArticleService(repo, suite.mockLedgerRepo, suite.mockUserRepo, nil)

	_, err := service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)
	_, err = service.ListArticles(suite.ctx, "", dto.ListArticlesParams{})
	suite.NoError(err)

	repo.AssertExpectations(suite.T())
}

func (suite *ArticleServiceTestSuite) TestListArticles_MapsPriceFilter() {
	suite.mockArticleRepo.On("ListArticles", mock.Anything,
		mock.MatchedBy(func(f portsrepo.ArticleListFilter) bool {
			return f.FreeOnly && !f.PaidOnly && f.Sort == portsrepo.ArticleSortRecent
		}),
	).Return([]domain.Article{}, nil).Once()

	_, err := suite.service.ListArticles(suite.ctx, "", dto.ListArticlesParams{Price: "free"})

	suite.NoError(err)
	suite.mockArticleRepo.AssertExpectations(suite.T())
}

func TestArticleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleServiceTestSuite))
}
