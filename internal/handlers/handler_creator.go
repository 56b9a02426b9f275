package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// creatorHandler serves creator profiles, tiers and tier subscriptions.
type creatorHandler struct {
	creatorService portssvc.CreatorService
	ledgerService  portssvc.LedgerService
}

func newCreatorHandler(creatorService portssvc.CreatorService, ledgerService portssvc.LedgerService) *creatorHandler {
	return &creatorHandler{
		creatorService: creatorService,
		ledgerService:  ledgerService,
	}
}

// getCreator godoc
// @Summary Get a creator by ID
// @Tags creators
// @Produce  json
// @Param   creatorID path string true "Creator ID"
// @Success 200 {object} dto.CreatorResponse
// @Failure 404 {object} map[string]string "Creator not found"
// @Router /creators/{creatorID} [get]
func (h *creatorHandler) getCreator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.creatorService.GetCreatorByID(c.Request.Context(), c.Param("creatorID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCreatorByHandle godoc
// @Summary Get a creator by handle
// @Tags creators
// @Produce  json
// @Param   handle path string true "Creator handle"
// @Success 200 {object} dto.CreatorResponse
// @Failure 404 {object} map[string]string "Creator not found"
// @Router /creators/handle/{handle} [get]
func (h *creatorHandler) getCreatorByHandle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.creatorService.GetCreatorByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTiers godoc
// @Summary List a creator's membership tiers
// @Tags creators
// @Produce  json
// @Param   creatorID path string true "Creator ID"
// @Success 200 {array} dto.TierResponse
// @Failure 404 {object} map[string]string "Creator not found"
// @Router /creators/{creatorID}/tiers [get]
func (h *creatorHandler) listTiers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tiers, err := h.creatorService.ListTiers(c.Request.Context(), c.Param("creatorID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, tiers)
}

// subscribeTier godoc
// @Summary Subscribe to a creator's membership tier
// @Description Charges the tier's monthly price and opens a 30-day membership period
// @Tags creators
// @Produce  json
// @Param   tierID path string true "Tier ID"
// @Success 200 {object} dto.SubscriptionResult
// @Failure 402 {object} map[string]string "Payment method required"
// @Failure 404 {object} map[string]string "Tier not found"
// @Security BearerAuth
// @Router /tiers/{tierID}/subscribe [post]
func (h *creatorHandler) subscribeTier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.SubscribeToTier(c.Request.Context(), userID, c.Param("tierID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// registerCreatorRoutes registers the creator catalog and tier subscribe routes.
func registerCreatorRoutes(public, monetary *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCreatorHandler(services.Creator, services.Ledger)

	public.GET("/creators/:creatorID", h.getCreator)
	public.GET("/creators/handle/:handle", h.getCreatorByHandle)
	public.GET("/creators/:creatorID/tiers", h.listTiers)

	monetary.POST("/tiers/:tierID/subscribe", h.subscribeTier)
}
