package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// paymentMethodHandler manages the authenticated user's saved payment methods.
type paymentMethodHandler struct {
	paymentMethodService portssvc.PaymentMethodService
}

func newPaymentMethodHandler(paymentMethodService portssvc.PaymentMethodService) *paymentMethodHandler {
	return &paymentMethodHandler{paymentMethodService: paymentMethodService}
}

// listPaymentMethods godoc
// @Summary List the authenticated user's payment methods
// @Tags payment-methods
// @Produce  json
// @Success 200 {array} dto.PaymentMethodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, methods)
}

// addPaymentMethod godoc
// @Summary Register a payment method
// @Description Card brands require the last four digits; wallet brands must omit them
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   request body dto.AddPaymentMethodRequest true "Payment method"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) addPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addPaymentMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	method, err := h.paymentMethodService.AddPaymentMethod(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

// registerPaymentMethodRoutes registers authenticated payment method routes.
func registerPaymentMethodRoutes(rg *gin.RouterGroup, paymentMethodService portssvc.PaymentMethodService) {
	h := newPaymentMethodHandler(paymentMethodService)
	methods := rg.Group("/payment-methods")
	{
		methods.GET("", h.listPaymentMethods)
		methods.POST("", h.addPaymentMethod)
	}
}
