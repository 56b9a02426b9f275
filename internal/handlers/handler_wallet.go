package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// walletHandler serves the authenticated user's ledger history and totals.
type walletHandler struct {
	ledgerService portssvc.LedgerService
}

func newWalletHandler(ledgerService portssvc.LedgerService) *walletHandler {
	return &walletHandler{ledgerService: ledgerService}
}

// listEntries godoc
// @Summary List the authenticated user's ledger entries
// @Description Returns entries newest first with an opaque cursor for the next page
// @Tags wallet
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallet/entries [get]
func (h *walletHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSummary godoc
// @Summary Get the authenticated user's spending summary
// @Description Totals per entry kind plus the overall total, formatted as decimal strings
// @Tags wallet
// @Produce  json
// @Success 200 {object} dto.WalletSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallet/summary [get]
func (h *walletHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.GetWalletSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerWalletRoutes registers authenticated wallet routes.
func registerWalletRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newWalletHandler(ledgerService)
	wallet := rg.Group("/wallet")
	{
		wallet.GET("/entries", h.listEntries)
		wallet.GET("/summary", h.getSummary)
	}
}
