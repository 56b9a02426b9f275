package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// communityHandler serves the community catalog and the subscribe action.
type communityHandler struct {
	communityService portssvc.CommunityService
	ledgerService    portssvc.LedgerService
}

func newCommunityHandler(communityService portssvc.CommunityService, ledgerService portssvc.LedgerService) *communityHandler {
	return &communityHandler{
		communityService: communityService,
		ledgerService:    ledgerService,
	}
}

// listCommunities godoc
// @Summary List communities
// @Tags communities
// @Produce  json
// @Param   joined query bool false "Filter by viewer membership"
// @Success 200 {object} dto.ListCommunitiesResponse
// @Router /communities [get]
func (h *communityHandler) listCommunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCommunitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	viewerID, _ := middleware.GetUserIDFromContext(c)
	resp, err := h.communityService.ListCommunities(c.Request.Context(), viewerID, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCommunity godoc
// @Summary Get a community by ID
// @Tags communities
// @Produce  json
// @Param   communityID path string true "Community ID"
// @Success 200 {object} dto.CommunityResponse
// @Failure 404 {object} map[string]string "Community not found"
// @Router /communities/{communityID} [get]
func (h *communityHandler) getCommunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	viewerID, _ := middleware.GetUserIDFromContext(c)
	resp, err := h.communityService.GetCommunityByID(c.Request.Context(), viewerID, c.Param("communityID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// subscribeCommunity godoc
// @Summary Subscribe to a community
// @Description Starts a 7-day free trial or a paid 30-day membership; an existing live membership is a no-op
// @Tags communities
// @Accept  json
// @Produce  json
// @Param   communityID path string true "Community ID"
// @Param   request body dto.SubscribeRequest true "Trial flag"
// @Success 200 {object} dto.SubscriptionResult
// @Failure 402 {object} map[string]string "Payment method required"
// @Failure 404 {object} map[string]string "Community not found"
// @Security BearerAuth
// @Router /communities/{communityID}/subscribe [post]
func (h *communityHandler) subscribeCommunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.ledgerService.RecordSubscription(c.Request.Context(), userID, c.Param("communityID"), req.Trial)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerCommunityRoutes registers the community catalog and subscribe routes.
func registerCommunityRoutes(public, monetary *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCommunityHandler(services.Community, services.Ledger)

	public.GET("/communities", h.listCommunities)
	public.GET("/communities/:communityID", h.getCommunity)

	monetary.POST("/communities/:communityID/subscribe", h.subscribeCommunity)
}
