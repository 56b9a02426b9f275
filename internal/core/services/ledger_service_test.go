package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portsrepo "github.com/tipnest/tipnest_backend/internal/core/ports/repositories"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/core/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/platform/cache"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) RecordPurchase(ctx context.Context, purchase domain.ArticlePurchase, entry domain.LedgerEntry) error {
	args := m.Called(ctx, purchase, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) RecordTip(ctx context.Context, item domain.ItemRef, entry domain.LedgerEntry) (portsrepo.TipCounters, error) {
	args := m.Called(ctx, item, entry)
	return args.Get(0).(portsrepo.TipCounters), args.Error(1)
}

func (m *MockLedgerRepository) RecordSubscription(ctx context.Context, sub domain.Subscription, entry domain.LedgerEntry) error {
	args := m.Called(ctx, sub, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SumAmountsByKind(ctx context.Context, userID string) (map[domain.EntryKind]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EntryKind]int64), args.Error(1)
}

func (m *MockLedgerRepository) CountTipEntriesForItem(ctx context.Context, item domain.ItemRef) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) HasPurchase(ctx context.Context, userID, articleID string) (bool, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) FindActiveSubscription(ctx context.Context, userID string, target domain.ItemRef) (*domain.Subscription, error) {
	args := m.Called(ctx, userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockLedgerRepository) ListPurchasedArticleIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepository) ListSubscribedCommunityIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockArticleRepository is a mock type for the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ListArticles(ctx context.Context, filter portsrepo.ArticleListFilter) ([]domain.Article, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

// MockCommunityRepository is a mock type for the CommunityRepository interface
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) FindCommunityByID(ctx context.Context, communityID string) (*domain.Community, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

func (m *MockCommunityRepository) FindCommunityBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

func (m *MockCommunityRepository) ListCommunities(ctx context.Context, limit int) ([]domain.Community, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Community), args.Error(1)
}

// MockPostRepository is a mock type for the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindPostByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, filter portsrepo.PostListFilter) ([]domain.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// MockCreatorRepository is a mock type for the CreatorRepository interface
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) FindCreatorByID(ctx context.Context, creatorID string) (*domain.Creator, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) FindCreatorByHandle(ctx context.Context, handle string) (*domain.Creator, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Creator), args.Error(1)
}

func (m *MockCreatorRepository) ListTiersByCreator(ctx context.Context, creatorID string) ([]domain.Tier, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tier), args.Error(1)
}

func (m *MockCreatorRepository) FindTierByID(ctx context.Context, tierID string) (*domain.Tier, error) {
	args := m.Called(ctx, tierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tier), args.Error(1)
}

// MockPaymentMethodRepository is a mock type for the PaymentMethodRepository interface
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) HasUsableMethod(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockPublisher is a mock type for the events.Publisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockArticleRepo *MockArticleRepository
	mockCommRepo    *MockCommunityRepository
	mockPostRepo    *MockPostRepository
	mockCreatorRepo *MockCreatorRepository
	mockPaymentRepo *MockPaymentMethodRepository
	mockPublisher   *MockPublisher
	service         portssvc.LedgerService
	ctx             context.Context
	userID          string
}

const testTipMinimumCents = 5

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockArticleRepo = new(MockArticleRepository)
	suite.mockCommRepo = new(MockCommunityRepository)
	suite.mockPostRepo = new(MockPostRepository)
	suite.mockCreatorRepo = new(MockCreatorRepository)
	suite.mockPaymentRepo = new(MockPaymentMethodRepository)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewLedgerService(
		suite.mockLedgerRepo,
		suite.mockArticleRepo,
		suite.mockCommRepo,
		suite.mockPostRepo,
		suite.mockCreatorRepo,
		suite.mockPaymentRepo,
		suite.mockPublisher,
		nil,
		testTipMinimumCents,
	)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) expectPaymentMethod(usable bool) {
	suite.mockPaymentRepo.On("HasUsableMethod", suite.ctx, suite.userID).Return(usable, nil).Once()
}

// --- RecordPurchase ---

func (suite *LedgerServiceTestSuite) TestRecordPurchase_Success() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Scaling Postgres", PriceCents: 500}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("HasPurchase", suite.ctx, suite.userID, article.ArticleID).Return(false, nil).Once()
	suite.mockLedgerRepo.On("RecordPurchase", suite.ctx,
		mock.MatchedBy(func(p domain.ArticlePurchase) bool {
			return p.UserID == suite.userID && p.ArticleID == article.ArticleID && p.AmountCents == 500
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Kind == domain.KindPurchase &&
				e.AmountCents == 500 &&
				e.Description == "Purchased: Scaling Postgres"
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordPurchase(suite.ctx, suite.userID, article.ArticleID)

	suite.NoError(err)
	suite.True(result.Owned)
	suite.False(result.AlreadyOwned)
	suite.NotEmpty(result.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPurchase_FreeArticleNeedsNoEntry() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Open Notes", PriceCents: 0}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()

	result, err := suite.service.RecordPurchase(suite.ctx, suite.userID, article.ArticleID)

	suite.NoError(err)
	suite.True(result.Owned)
	suite.True(result.AlreadyOwned)
	suite.Empty(result.EntryID)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "HasUsableMethod", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPurchase_NoPaymentMethod() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Paid", PriceCents: 300}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(false)

	_, err := suite.service.RecordPurchase(suite.ctx, suite.userID, article.ArticleID)

	suite.ErrorIs(err, apperrors.ErrPaymentMethodMissing)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPurchase_AlreadyOwnedIsNoOp() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Paid", PriceCents: 300}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("HasPurchase", suite.ctx, suite.userID, article.ArticleID).Return(true, nil).Once()

	result, err := suite.service.RecordPurchase(suite.ctx, suite.userID, article.ArticleID)

	suite.NoError(err)
	suite.True(result.Owned)
	suite.True(result.AlreadyOwned)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPurchase_LostRaceReportsOwned() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Paid", PriceCents: 300}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("HasPurchase", suite.ctx, suite.userID, article.ArticleID).Return(false, nil).Once()
	suite.mockLedgerRepo.On("RecordPurchase", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrAlreadyOwned).Once()

	result, err := suite.service.RecordPurchase(suite.ctx, suite.userID, article.ArticleID)

	suite.NoError(err)
	suite.True(result.Owned)
	suite.True(result.AlreadyOwned)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPurchase_ArticleNotFound() {
	articleID := uuid.NewString()
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, articleID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPurchase(suite.ctx, suite.userID, articleID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- RecordTip ---

func (suite *LedgerServiceTestSuite) TestRecordTip_ArticleSuccess() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Scaling Postgres", PriceCents: 500}
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: article.ArticleID}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("RecordTip", suite.ctx, item,
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Kind == domain.KindTip &&
				e.AmountCents == 250 &&
				e.Description == "Tipped: Scaling Postgres"
		}),
	).Return(portsrepo.TipCounters{TipsCount: 13}, nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordTip(suite.ctx, suite.userID, item, 250)

	suite.NoError(err)
	suite.Equal(int64(13), result.TipsCount)
	suite.NotEmpty(result.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTip_PostBumpsRunningTotal() {
	post := &domain.Post{PostID: uuid.NewString(), Title: "Studio Tour"}
	item := domain.ItemRef{Kind: domain.ItemPost, ID: post.PostID}
	suite.mockPostRepo.On("FindPostByID", suite.ctx, post.PostID).Return(post, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("RecordTip", suite.ctx, item, mock.Anything).
		Return(portsrepo.TipCounters{TipsCount: 4, TipsTotalCents: 2000}, nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordTip(suite.ctx, suite.userID, item, 500)

	suite.NoError(err)
	suite.Equal(int64(4), result.TipsCount)
	suite.Equal(int64(2000), result.TipsTotalCents)
}

func (suite *LedgerServiceTestSuite) TestRecordTip_BelowMinimum() {
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: uuid.NewString()}

	_, err := suite.service.RecordTip(suite.ctx, suite.userID, item, testTipMinimumCents-1)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockArticleRepo.AssertNotCalled(suite.T(), "FindArticleByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTip_RejectsUntippableKind() {
	item := domain.ItemRef{Kind: domain.ItemCommunity, ID: uuid.NewString()}

	_, err := suite.service.RecordTip(suite.ctx, suite.userID, item, 100)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordTip_NoPaymentMethod() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Paid", PriceCents: 300}
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: article.ArticleID}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(false)

	_, err := suite.service.RecordTip(suite.ctx, suite.userID, item, 100)

	suite.ErrorIs(err, apperrors.ErrPaymentMethodMissing)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordTip", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTip_PublishFailureDoesNotFailTip() {
	article := &domain.Article{ArticleID: uuid.NewString(), Title: "Paid", PriceCents: 300}
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: article.ArticleID}
	suite.mockArticleRepo.On("FindArticleByID", suite.ctx, article.ArticleID).Return(article, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("RecordTip", suite.ctx, item, mock.Anything).
		Return(portsrepo.TipCounters{TipsCount: 1}, nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).
		Return(fmt.Errorf("broker unreachable")).Once()

	result, err := suite.service.RecordTip(suite.ctx, suite.userID, item, 100)

	suite.NoError(err)
	suite.Equal(int64(1), result.TipsCount)
}

// --- RecordSubscription ---

func (suite *LedgerServiceTestSuite) TestRecordSubscription_TrialFieldsAndZeroAmount() {
	community := &domain.Community{CommunityID: uuid.NewString(), Name: "Indie Filmmakers", MonthlyPriceCents: 900}
	target := domain.ItemRef{Kind: domain.ItemCommunity, ID: community.CommunityID}
	suite.mockCommRepo.On("FindCommunityByID", suite.ctx, community.CommunityID).Return(community, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).
		Return(nil, apperrors.ErrNotFound).Once()

	before := time.Now()
	suite.mockLedgerRepo.On("RecordSubscription", suite.ctx,
		mock.MatchedBy(func(sub domain.Subscription) bool {
			return sub.Status == domain.SubscriptionTrial &&
				sub.TrialEndsAt != nil &&
				sub.CurrentPeriodEnd.After(before.Add(domain.TrialPeriod-time.Minute)) &&
				sub.CurrentPeriodEnd.Before(before.Add(domain.TrialPeriod+time.Minute))
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Kind == domain.KindSubscription &&
				e.AmountCents == 0 &&
				e.Description == "Subscribed to: Indie Filmmakers (Free Trial)"
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordSubscription(suite.ctx, suite.userID, community.CommunityID, true)

	suite.NoError(err)
	suite.True(result.Joined)
	suite.False(result.AlreadySubscribed)
	suite.Equal(domain.SubscriptionTrial, result.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordSubscription_PaidChargesMonthlyPrice() {
	community := &domain.Community{CommunityID: uuid.NewString(), Name: "Indie Filmmakers", MonthlyPriceCents: 900}
	target := domain.ItemRef{Kind: domain.ItemCommunity, ID: community.CommunityID}
	suite.mockCommRepo.On("FindCommunityByID", suite.ctx, community.CommunityID).Return(community, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("RecordSubscription", suite.ctx,
		mock.MatchedBy(func(sub domain.Subscription) bool {
			return sub.Status == domain.SubscriptionActive && sub.TrialEndsAt == nil
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.AmountCents == 900 && e.Description == "Subscribed to: Indie Filmmakers"
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecordSubscription(suite.ctx, suite.userID, community.CommunityID, false)

	suite.NoError(err)
	suite.Equal(domain.SubscriptionActive, result.Status)
	suite.NotEmpty(result.EntryID)
}

func (suite *LedgerServiceTestSuite) TestRecordSubscription_AlreadyLiveIsNoOp() {
	community := &domain.Community{CommunityID: uuid.NewString(), Name: "Indie Filmmakers", MonthlyPriceCents: 900}
	target := domain.ItemRef{Kind: domain.ItemCommunity, ID: community.CommunityID}
	periodEnd := time.Now().Add(12 * 24 * time.Hour)
	existing := &domain.Subscription{Status: domain.SubscriptionActive, CurrentPeriodEnd: periodEnd}
	suite.mockCommRepo.On("FindCommunityByID", suite.ctx, community.CommunityID).Return(community, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).Return(existing, nil).Once()

	result, err := suite.service.RecordSubscription(suite.ctx, suite.userID, community.CommunityID, false)

	suite.NoError(err)
	suite.True(result.Joined)
	suite.True(result.AlreadySubscribed)
	suite.Equal(domain.SubscriptionActive, result.Status)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordSubscription_TrialStillNeedsPaymentMethod() {
	community := &domain.Community{CommunityID: uuid.NewString(), Name: "Indie Filmmakers", MonthlyPriceCents: 900}
	suite.mockCommRepo.On("FindCommunityByID", suite.ctx, community.CommunityID).Return(community, nil).Once()
	suite.expectPaymentMethod(false)

	_, err := suite.service.RecordSubscription(suite.ctx, suite.userID, community.CommunityID, true)

	suite.ErrorIs(err, apperrors.ErrPaymentMethodMissing)
}

func (suite *LedgerServiceTestSuite) TestRecordSubscription_LostRaceReportsWinner() {
	community := &domain.Community{CommunityID: uuid.NewString(), Name: "Indie Filmmakers", MonthlyPriceCents: 900}
	target := domain.ItemRef{Kind: domain.ItemCommunity, ID: community.CommunityID}
	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	winner := &domain.Subscription{Status: domain.SubscriptionActive, CurrentPeriodEnd: periodEnd}
	suite.mockCommRepo.On("FindCommunityByID", suite.ctx, community.CommunityID).Return(community, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("RecordSubscription", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrAlreadySubscribed).Once()
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).
		Return(winner, nil).Once()

	result, err := suite.service.RecordSubscription(suite.ctx, suite.userID, community.CommunityID, false)

	suite.NoError(err)
	suite.True(result.AlreadySubscribed)
	suite.Equal(domain.SubscriptionActive, result.Status)
}

// --- SubscribeToTier ---

func (suite *LedgerServiceTestSuite) TestSubscribeToTier_Success() {
	tier := &domain.Tier{TierID: uuid.NewString(), CreatorID: uuid.NewString(), Name: "Backstage", PriceCents: 1500, Active: true}
	target := domain.ItemRef{Kind: domain.ItemTier, ID: tier.TierID}
	suite.mockCreatorRepo.On("FindTierByID", suite.ctx, tier.TierID).Return(tier, nil).Once()
	suite.expectPaymentMethod(true)
	suite.mockLedgerRepo.On("FindActiveSubscription", suite.ctx, suite.userID, target).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("RecordSubscription", suite.ctx,
		mock.MatchedBy(func(sub domain.Subscription) bool {
			return sub.TargetKind == domain.ItemTier && sub.TierID != nil && *sub.TierID == tier.TierID
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.AmountCents == 1500 && e.Description == "Subscribed to: Backstage"
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", suite.ctx, services.LedgerEventTopic, mock.Anything).Return(nil).Once()

	result, err := suite.service.SubscribeToTier(suite.ctx, suite.userID, tier.TierID)

	suite.NoError(err)
	suite.Equal(domain.SubscriptionActive, result.Status)
}

func (suite *LedgerServiceTestSuite) TestSubscribeToTier_InactiveTierRejected() {
	tier := &domain.Tier{TierID: uuid.NewString(), Name: "Retired", PriceCents: 1500, Active: false}
	suite.mockCreatorRepo.On("FindTierByID", suite.ctx, tier.TierID).Return(tier, nil).Once()

	_, err := suite.service.SubscribeToTier(suite.ctx, suite.userID, tier.TierID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "HasUsableMethod", mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultsLimit() {
	suite.mockLedgerRepo.On("ListEntriesByUser", suite.ctx, suite.userID, 20, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	_, err := suite.service.ListEntries(suite.ctx, suite.userID, dto.ListEntriesParams{})

	suite.NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetWalletSummary_FormatsTotals() {
	suite.mockLedgerRepo.On("SumAmountsByKind", suite.ctx, suite.userID).Return(map[domain.EntryKind]int64{
		domain.KindPurchase:     1250,
		domain.KindTip:          300,
		domain.KindSubscription: 900,
	}, nil).Once()

	summary, err := suite.service.GetWalletSummary(suite.ctx, suite.userID)

	suite.NoError(err)
	suite.Equal("12.50", summary.PurchasesTotal)
	suite.Equal("3.00", summary.TipsTotal)
	suite.Equal("9.00", summary.SubscriptionsTotal)
	suite.Equal("24.50", summary.Total)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

// --- Concurrency ---

// countingLedgerRepo is a mutex-protected fake that mimics the repository's atomicity
// contract so the service can be hammered from many goroutines.
type countingLedgerRepo struct {
	MockLedgerRepository
	mu       sync.Mutex
	tipCount int64
	tipTotal int64
	entries  int
}

func (r *countingLedgerRepo) RecordTip(ctx context.Context, item domain.ItemRef, entry domain.LedgerEntry) (portsrepo.TipCounters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tipCount++
	r.tipTotal += entry.AmountCents
	r.entries++
	return portsrepo.TipCounters{TipsCount: r.tipCount, TipsTotalCents: r.tipTotal}, nil
}

func TestRecordTip_ConcurrentTipsAllLand(t *testing.T) {
	const goroutines = 50
	const amountCents = 100

	ledgerRepo := &countingLedgerRepo{}
	postRepo := new(MockPostRepository)
	paymentRepo := new(MockPaymentMethodRepository)
	post := &domain.Post{PostID: uuid.NewString(), Title: "Live Session"}
	postRepo.On("FindPostByID", mock.Anything, post.PostID).Return(post, nil)
	paymentRepo.On("HasUsableMethod", mock.Anything, mock.Anything).Return(true, nil)

	service := services.NewLedgerService(
		ledgerRepo,
		new(MockArticleRepository),
		new(MockCommunityRepository),
		postRepo,
		new(MockCreatorRepository),
		paymentRepo,
		nil,
		nil,
		testTipMinimumCents,
	)

	item := domain.ItemRef{Kind: domain.ItemPost, ID: post.PostID}
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.RecordTip(context.Background(), uuid.NewString(), item, amountCents)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(goroutines), ledgerRepo.tipCount)
	assert.Equal(t, int64(goroutines*amountCents), ledgerRepo.tipTotal)
	assert.Equal(t, goroutines, ledgerRepo.entries)
}

// --- Cache invalidation ---

func TestRecordTip_InvalidatesCachedArticleRead(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	catalogCache := cache.NewCache(client, time.Minute)

	author := &domain.User{UserID: uuid.NewString(), Name: "Maya Chen"}
	article := &domain.Article{
		ArticleID: uuid.NewString(),
		AuthorID:  author.UserID,
		Title:     "Lighting on a Budget",
		TipsCount: 3,
	}
	tipped := *article
	tipped.TipsCount = 4

	articleRepo := new(MockArticleRepository)
	articleRepo.On("FindArticleByID", mock.Anything, article.ArticleID).Return(article, nil).Once()
	articleRepo.On("FindArticleByID", mock.Anything, article.ArticleID).Return(&tipped, nil)
	userRepo := new(MockUserRepository)
	userRepo.On("FindUserByID", mock.Anything, author.UserID).Return(author, nil)
	ledgerRepo := new(MockLedgerRepository)
	ledgerRepo.On("RecordTip", mock.Anything, mock.Anything, mock.Anything).
		Return(portsrepo.TipCounters{TipsCount: 4}, nil).Once()
	paymentRepo := new(MockPaymentMethodRepository)
	paymentRepo.On("HasUsableMethod", mock.Anything, mock.Anything).Return(true, nil)

	articleService := services.NewArticleService(articleRepo, ledgerRepo, userRepo, catalogCache)
	ledgerService := services.NewLedgerService(
		ledgerRepo,
		articleRepo,
		new(MockCommunityRepository),
		new(MockPostRepository),
		new(MockCreatorRepository),
		paymentRepo,
		nil,
		catalogCache,
		testTipMinimumCents,
	)

	ctx := context.Background()
	before, err := articleService.GetArticleByID(ctx, "", article.ArticleID)
	require.NoError(t, err)
	require.Equal(t, int64(3), before.TipsCount)

	item := domain.ItemRef{Kind: domain.ItemArticle, ID: article.ArticleID}
	_, err = ledgerService.RecordTip(ctx, uuid.NewString(), item, 250)
	require.NoError(t, err)

	// The tip bumped the catalog cache version, so this read reloads from the
	// repository instead of serving the stale payload.
	after, err := articleService.GetArticleByID(ctx, "", article.ArticleID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), after.TipsCount, "cached read must reflect the committed tip")
}
