package handlers

import (
	"github.com/SscSPs/academy_fee_ledger/cmd/docs"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/SscSPs/academy_fee_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// v1Middleware runs after authentication on every /api/v1 route (rate limiting, analytics).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	v1Middleware ...gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", getHealth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, v1Middleware)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	extra []gin.HandlerFunc,
) {
	// Apply AuthMiddleware to the entire v1 group
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, extra...)
	v1 := r.Group("/api/v1", chain...)

	v1.GET("/", getHome)
	registerStudentRoutes(v1, service.Student, service.Payment)
	registerFeeRoutes(v1, service.Fee)
	registerPayoutRoutes(v1, service.Payout, service.Fee)
	registerExpenseRoutes(v1, service.Expense)
	registerActivityRoutes(v1, service.Activity)
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
