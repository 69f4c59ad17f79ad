package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rodmarapp/rodmar_backend/cmd/docs"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/middleware"
	"github.com/rodmarapp/rodmar_backend/internal/platform/config"
	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	r.GET("/", getHome)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Everything else sits behind the bearer token
	setupAPIRoutes(r, cfg, services, hub)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))

	registerPartnerRoutes(api, services.Partner)
	registerBalanceRoutes(api, services.Balance)
	registerTransaccionRoutes(api, services.Transaccion)
	registerViajeRoutes(api, services.Viaje, services.Import)
	registerAdminRoutes(api, services.Role, services.User)
	registerUserRoutes(api, services.User)
	registerEventosRoutes(api, hub)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
