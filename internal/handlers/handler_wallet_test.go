package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/handlers"
	"github.com/tipnest/tipnest_backend/internal/platform/config"
	"github.com/tipnest/tipnest_backend/internal/utils"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordPurchase(ctx context.Context, userID string, articleID string) (dto.PurchaseResult, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Get(0).(dto.PurchaseResult), args.Error(1)
}

func (m *MockLedgerService) RecordTip(ctx context.Context, userID string, item domain.ItemRef, amountCents int64) (dto.TipResult, error) {
	args := m.Called(ctx, userID, item, amountCents)
	return args.Get(0).(dto.TipResult), args.Error(1)
}

func (m *MockLedgerService) RecordSubscription(ctx context.Context, userID string, communityID string, trial bool) (dto.SubscriptionResult, error) {
	args := m.Called(ctx, userID, communityID, trial)
	return args.Get(0).(dto.SubscriptionResult), args.Error(1)
}

func (m *MockLedgerService) SubscribeToTier(ctx context.Context, userID string, tierID string) (dto.SubscriptionResult, error) {
	args := m.Called(ctx, userID, tierID)
	return args.Get(0).(dto.SubscriptionResult), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (dto.ListEntriesResponse, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) GetWalletSummary(ctx context.Context, userID string) (dto.WalletSummaryResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dto.WalletSummaryResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerService = (*MockLedgerService)(nil)

// --- Test Suite ---
type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	userID            string
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		IsProduction:      true, // skip swagger in tests
		MonetaryRateLimit: "100-M",
		AuthRateLimit:     "100-M",
	}
	services := &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *WalletHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "tipnest-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *WalletHandlerTestSuite) doRequest(method, url string, body string, authenticated bool) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WalletHandlerTestSuite) TestGetSummary_Success() {
	expected := dto.WalletSummaryResponse{
		PurchasesTotal:     "12.50",
		TipsTotal:          "3.00",
		SubscriptionsTotal: "9.00",
		Total:              "24.50",
	}
	suite.mockLedgerService.On("GetWalletSummary", mock.Anything, suite.userID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/wallet/summary", "", true)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.WalletSummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(expected, got)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestGetSummary_RequiresAuth() {
	w := suite.doRequest(http.MethodGet, "/api/v1/wallet/summary", "", false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetWalletSummary", mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestListEntries_PassesPaginationParams() {
	token := "b3BhcXVl"
	suite.mockLedgerService.On("ListEntries", mock.Anything, suite.userID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Limit == 10 && p.NextToken != nil && *p.NextToken == token
		}),
	).Return(dto.ListEntriesResponse{Entries: []dto.LedgerEntryResponse{}}, nil).Once()

	url := fmt.Sprintf("/api/v1/wallet/entries?limit=10&nextToken=%s", token)
	w := suite.doRequest(http.MethodGet, url, "", true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestTipArticle_Success() {
	articleID := uuid.NewString()
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: articleID}
	suite.mockLedgerService.On("RecordTip", mock.Anything, suite.userID, item, int64(250)).
		Return(dto.TipResult{EntryID: uuid.NewString(), TipsCount: 4}, nil).Once()

	url := fmt.Sprintf("/api/v1/articles/%s/tip", articleID)
	w := suite.doRequest(http.MethodPost, url, `{"amountCents":250}`, true)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.TipResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(int64(4), got.TipsCount)
}

func (suite *WalletHandlerTestSuite) TestTipArticle_BelowMinimumIsBadRequest() {
	articleID := uuid.NewString()
	item := domain.ItemRef{Kind: domain.ItemArticle, ID: articleID}
	suite.mockLedgerService.On("RecordTip", mock.Anything, suite.userID, item, int64(1)).
		Return(dto.TipResult{}, fmt.Errorf("%w: tip must be at least 5 cents", apperrors.ErrInvalidAmount)).Once()

	url := fmt.Sprintf("/api/v1/articles/%s/tip", articleID)
	w := suite.doRequest(http.MethodPost, url, `{"amountCents":1}`, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *WalletHandlerTestSuite) TestPurchaseArticle_MissingPaymentMethodIs402() {
	articleID := uuid.NewString()
	suite.mockLedgerService.On("RecordPurchase", mock.Anything, suite.userID, articleID).
		Return(dto.PurchaseResult{}, apperrors.ErrPaymentMethodMissing).Once()

	url := fmt.Sprintf("/api/v1/articles/%s/purchase", articleID)
	w := suite.doRequest(http.MethodPost, url, "", true)

	suite.Equal(http.StatusPaymentRequired, w.Code)
}

func (suite *WalletHandlerTestSuite) TestSubscribeCommunity_TrialFlagForwarded() {
	communityID := uuid.NewString()
	periodEnd := time.Now().Add(7 * 24 * time.Hour)
	suite.mockLedgerService.On("RecordSubscription", mock.Anything, suite.userID, communityID, true).
		Return(dto.SubscriptionResult{Joined: true, Status: domain.SubscriptionTrial, CurrentPeriodEnd: &periodEnd}, nil).Once()

	url := fmt.Sprintf("/api/v1/communities/%s/subscribe", communityID)
	w := suite.doRequest(http.MethodPost, url, `{"trial":true}`, true)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.SubscriptionResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Joined)
	suite.Equal(domain.SubscriptionTrial, got.Status)
}

func (suite *WalletHandlerTestSuite) TestMonetaryRoutesRequireAuth() {
	urls := []string{
		fmt.Sprintf("/api/v1/articles/%s/purchase", uuid.NewString()),
		fmt.Sprintf("/api/v1/articles/%s/tip", uuid.NewString()),
		fmt.Sprintf("/api/v1/communities/%s/subscribe", uuid.NewString()),
		fmt.Sprintf("/api/v1/tiers/%s/subscribe", uuid.NewString()),
	}
	for _, url := range urls {
		w := suite.doRequest(http.MethodPost, url, `{}`, false)
		suite.Equal(http.StatusUnauthorized, w.Code, "expected 401 for %s", url)
	}
}

func TestWalletHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
