package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/artfolio/internal/api/handler"
	"github.com/timmy/artfolio/internal/api/middleware"
	"github.com/timmy/artfolio/internal/config"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/service"
	"gorm.io/gorm"
)

// Dependencies groups the services the HTTP API is built on.
type Dependencies struct {
	DB                    *gorm.DB
	CatalogService        *service.CatalogService
	RecommendationService *service.RecommendationService
	CollectionService     *service.CollectionService
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - deps: services backing the handlers.
//   - cfg: server configuration (mode and CORS).
//   - log: base logger for request logging.
//
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(deps *Dependencies, cfg *config.ServerConfig, log *logger.Logger) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Metrics())

	healthHandler := handler.NewHealthHandler(deps.DB)
	artworkHandler := handler.NewArtworkHandler(deps.CatalogService)
	recommendationHandler := handler.NewRecommendationHandler(deps.RecommendationService)
	collectionHandler := handler.NewCollectionHandler(deps.CollectionService)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Museum collection
		v1.GET("/artworks", artworkHandler.ListArtworks)
		v1.GET("/artworks/search", artworkHandler.SearchArtworks)
		v1.GET("/artworks/:id", artworkHandler.GetArtwork)

		v1.GET("/recommendations", recommendationHandler.GetRecommendations)

		// Saved collection
		v1.GET("/saved", collectionHandler.ListSaved)
		v1.GET("/saved/:id", collectionHandler.GetSavedStatus)
		v1.POST("/saved/:id", collectionHandler.Save)
		v1.DELETE("/saved/:id", collectionHandler.Unsave)

		// Disliked collection
		v1.GET("/disliked", collectionHandler.ListDisliked)
		v1.POST("/disliked/:id", collectionHandler.Dislike)
		v1.DELETE("/disliked/:id", collectionHandler.Undislike)
	}

	return r
}
