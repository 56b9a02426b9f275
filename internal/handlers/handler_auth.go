package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/dto"
	"github.com/tipnest/tipnest_backend/internal/middleware"
)

// authHandler handles registration, password login and Google OAuth.
type authHandler struct {
	userService   portssvc.UserService
	googleService portssvc.GoogleOAuthService
}

func newAuthHandler(userService portssvc.UserService, googleService portssvc.GoogleOAuthService) *authHandler {
	return &authHandler{
		userService:   userService,
		googleService: googleService,
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates a local account with username and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// login godoc
// @Summary Login with username and password
// @Description Issues a JWT for valid credentials
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// exchangeCodeRequest is the body for the Google code exchange endpoint.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an application JWT
// @Description Validates the Google ID token, provisions the account on first sign-in and returns a session token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	resp, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		logger.Error("Google code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.GoogleOAuth)
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/google/exchange-code", h.exchangeCodeGoogle)
	}
}
