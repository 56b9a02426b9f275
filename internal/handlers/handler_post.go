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

// postHandler serves the creator feed and the post monetary actions.
type postHandler struct {
	postService   portssvc.PostService
	ledgerService portssvc.LedgerService
}

func newPostHandler(postService portssvc.PostService, ledgerService portssvc.LedgerService) *postHandler {
	return &postHandler{
		postService:   postService,
		ledgerService: ledgerService,
	}
}

// listFeed godoc
// @Summary List the post feed
// @Tags posts
// @Produce  json
// @Param   tab query string false "trending or latest"
// @Param   type query string false "all, video or article"
// @Success 200 {object} dto.ListFeedResponse
// @Router /feed [get]
func (h *postHandler) listFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.postService.ListFeed(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPost godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{postID} [get]
func (h *postHandler) getPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.postService.GetPostByID(c.Request.Context(), c.Param("postID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createPost godoc
// @Summary Publish a post
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /posts [post]
func (h *postHandler) createPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.postService.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// recordView godoc
// @Summary Record a view on a post
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 204 "No content"
// @Router /posts/{postID}/view [post]
func (h *postHandler) recordView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.postService.RecordView(c.Request.Context(), c.Param("postID")); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// tipPost godoc
// @Summary Tip a post
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   postID path string true "Post ID"
// @Param   request body dto.TipRequest true "Tip amount in minor units"
// @Success 200 {object} dto.TipResult
// @Failure 400 {object} map[string]string "Amount below minimum"
// @Failure 402 {object} map[string]string "Payment method required"
// @Security BearerAuth
// @Router /posts/{postID}/tip [post]
func (h *postHandler) tipPost(c *gin.Context) {
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

	item := domain.ItemRef{Kind: domain.ItemPost, ID: c.Param("postID")}
	result, err := h.ledgerService.RecordTip(c.Request.Context(), userID, item, req.AmountCents)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerPostRoutes registers the feed and post routes.
func registerPostRoutes(public, authed, monetary *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPostHandler(services.Post, services.Ledger)

	public.GET("/feed", h.listFeed)
	public.GET("/posts/:postID", h.getPost)
	public.POST("/posts/:postID/view", h.recordView)

	authed.POST("/posts", h.createPost)

	monetary.POST("/posts/:postID/tip", h.tipPost)
}
