package server

import (
	"github.com/codelancer/api/internal/eventbus"
	"github.com/codelancer/api/internal/handlers"
	"github.com/codelancer/api/internal/metrics"
	"github.com/codelancer/api/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/codelancer/api/docs" // Swagger docs
)

// Dependencies are the shared services the router wires into handlers
type Dependencies struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Publisher eventbus.Publisher
	Analyzer  handlers.Analyzer
	Generator handlers.Generator
	Corrector handlers.Corrector
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Publisher == nil {
		deps.Publisher = eventbus.NopPublisher{}
	}

	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(deps.Metrics))

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	healthHandler := handlers.NewHealthHandler()
	analysisHandler := handlers.NewAnalysisHandler(deps.Analyzer, deps.Metrics, deps.Publisher, deps.Logger)
	generationHandler := handlers.NewGenerationHandler(deps.Generator, deps.Metrics, deps.Publisher, deps.Logger)
	correctionHandler := handlers.NewCorrectionHandler(deps.Corrector, deps.Metrics, deps.Publisher, deps.Logger)

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/features", healthHandler.ListFeatures)

	router.POST("/analyze", analysisHandler.Analyze)
	router.POST("/generate", generationHandler.Generate)
	router.POST("/correct", correctionHandler.Correct)

	return router
}
