package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// articleHandler serves the article catalog and the article monetary actions.
type articleHandler struct {
	articleService portssvc.ArticleService
	ledgerService  portssvc.LedgerService
}

func newArticleHandler(articleService portssvc.ArticleService, ledgerService portssvc.LedgerService) *articleHandler {
	return &articleHandler{
		articleService: articleService,
		ledgerService:  ledgerService,
	}
}

// listArticles godoc
// @Summary List articles
// @Description Lists articles with optional search, category, price and sort filters
// @Tags articles
// @Produce  json
// @Param   search query string false "Title search"
// @Param   category query string false "Category filter"
// @Param   price query string false "free or paid"
// @Param   sort query string false "recent or most_tipped"
// @Success 200 {object} dto.ListArticlesResponse
// @Router /articles [get]
func (h *articleHandler) listArticles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListArticlesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	viewerID, _ := middleware.GetUserIDFromContext(c)
	resp, err := h.articleService.ListArticles(c.Request.Context(), viewerID, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getArticle godoc
// @Summary Get an article by ID
// @Description Full content is included only when the viewer owns the article
// @Tags articles
// @Produce  json
// @Param   articleID path string true "Article ID"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/{articleID} [get]
func (h *articleHandler) getArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, _ := middleware.GetUserIDFromContext(c)
	resp, err := h.articleService.GetArticleByID(c.Request.Context(), viewerID, c.Param("articleID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getArticleBySlug godoc
// @Summary Get an article by slug
// @Tags articles
// @Produce  json
// @Param   slug path string true "Article slug"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} map[string]string "Article not found"
// @Router /articles/slug/{slug} [get]
func (h *articleHandler) getArticleBySlug(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, _ := middleware.GetUserIDFromContext(c)
	resp, err := h.articleService.GetArticleBySlug(c.Request.Context(), viewerID, c.Param("slug"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createArticle godoc
// @Summary Publish an article
// @Tags articles
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateArticleRequest true "Article"
// @Success 201 {object} dto.ArticleResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /articles [post]
func (h *articleHandler) createArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createArticle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.articleService.CreateArticle(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// purchaseArticle godoc
// @Summary Purchase an article
// @Description Charges the listed price once; re-purchasing an owned article is a no-op
// @Tags articles
// @Produce  json
// @Param   articleID path string true "Article ID"
// @Success 200 {object} dto.PurchaseResult
// @Failure 402 {object} map[string]string "Payment method required"
// @Failure 404 {object} map[string]string "Article not found"
// @Security BearerAuth
// @Router /articles/{articleID}/purchase [post]
func (h *articleHandler) purchaseArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.RecordPurchase(c.Request.Context(), userID, c.Param("articleID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// tipArticle godoc
// @Summary Tip an article
// @Tags articles
// @Accept  json
// @Produce  json
// @Param   articleID path string true "Article ID"
// @Param   request body dto.TipRequest true "Tip amount in minor units"
// @Success 200 {object} dto.TipResult
// @Failure 400 {object} map[string]string "Amount below minimum"
// @Failure 402 {object} map[string]string "Payment method required"
// @Security BearerAuth
// @Router /articles/{articleID}/tip [post]
func (h *articleHandler) tipArticle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item := domain.ItemRef{Kind: domain.ItemArticle, ID: c.Param("articleID")}
	result, err := h.ledgerService.RecordTip(c.Request.Context(), userID, item, req.AmountCents)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerArticleRoutes registers the article catalog and monetary routes.
// monetary carries the payment rate limit on top of authentication.
func registerArticleRoutes(public, authed, monetary *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newArticleHandler(services.Article, services.Ledger)

	public.GET("/articles", h.listArticles)
	public.GET("/articles/:articleID", h.getArticle)
	public.GET("/articles/slug/:slug", h.getArticleBySlug)

	authed.POST("/articles", h.createArticle)

	monetary.POST("/articles/:articleID/purchase", h.purchaseArticle)
	monetary.POST("/articles/:articleID/tip", h.tipArticle)
}
