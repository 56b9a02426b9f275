package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tipnest/tipnest_backend/cmd/docs"
	portssvc "github.com/tipnest/tipnest_backend/internal/core/ports/services"
	"github.com/tipnest/tipnest_backend/internal/middleware"
	"github.com/tipnest/tipnest_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if err := RegisterCustomValidators(); err != nil {
		slog.Error("Failed to register custom validators", slog.String("error", err.Error()))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 groups and delegates to specific entity route registrations.
// Three tiers of access apply: public catalog reads resolve the viewer when a token is present,
// authed routes require a valid token, and monetary routes additionally carry the payment rate limit.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Public auth endpoints get their own, tighter rate limit
	authGroup := r.Group("/api/v1")
	if authLimiter, err := middleware.NewRateLimiter(cfg.AuthRateLimit); err != nil {
		slog.Error("Failed to create auth rate limiter", slog.String("error", err.Error()))
	} else {
		authGroup.Use(middleware.RateLimit(authLimiter))
	}
	registerAuthRoutes(authGroup, services)

	public := r.Group("/api/v1", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	authed := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	monetary := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if monetaryLimiter, err := middleware.NewRateLimiter(cfg.MonetaryRateLimit); err != nil {
		slog.Error("Failed to create monetary rate limiter", slog.String("error", err.Error()))
	} else {
		monetary.Use(middleware.RateLimit(monetaryLimiter))
	}

	registerArticleRoutes(public, authed, monetary, services)
	registerCommunityRoutes(public, monetary, services)
	registerPostRoutes(public, authed, monetary, services)
	registerCreatorRoutes(public, monetary, services)

	registerUserRoutes(authed, services.User)
	registerWalletRoutes(authed, services.Ledger)
	registerPaymentMethodRoutes(authed, services.PaymentMethod)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
