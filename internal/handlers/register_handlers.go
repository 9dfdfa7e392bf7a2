package handlers

import (
	"github.com/furiksayram-commits/debt-tracker/cmd/docs"
	"github.com/furiksayram-commits/debt-tracker/internal/core/ports"
	"github.com/furiksayram-commits/debt-tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	debtorService ports.DebtorSvcFacade,
	store ports.DebtorStore,
	storeName string,
) {
	api := r.Group("/api")

	registerDebtRoutes(api, debtorService)

	hh := &healthHandler{store: store, storeName: storeName}
	api.GET("/health", hh.health)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
