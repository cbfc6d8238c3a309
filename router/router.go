package router

import (
	"time"

	"github.com/OpinaApp/opina-backend/config"
	"github.com/OpinaApp/opina-backend/handlers"
	"github.com/OpinaApp/opina-backend/middleware"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	RedisClient     *redis.Client
	ItemHandler     *handlers.FeedbackItemHandler
	ResponseHandler *handlers.ResponseHandler
	QRHandler       *handlers.QRHandler
	HealthHandler   *handlers.HealthHandler
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes (no auth)
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		// Public intake: the QR form posts here without credentials, so the
		// endpoint is rate limited per client IP instead.
		rateLimiter := middleware.FeedbackRateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.FeedbackRequestsPerMinute,
			time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
		)
		v1.POST("/feedback", rateLimiter, deps.ResponseHandler.Submit)
		v1.GET("/feedback/qr", deps.QRHandler.FeedbackQR)

		// --- Authenticated Routes ---
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(deps.Config))
		{
			suggestionRoutes := authRoutes.Group("/suggestions")
			{
				suggestionRoutes.POST("", deps.ItemHandler.Create(types.CategorySuggestion))
				suggestionRoutes.GET("", deps.ItemHandler.List(types.CategorySuggestion))
				suggestionRoutes.GET("/:id", deps.ItemHandler.Get(types.CategorySuggestion))
				suggestionRoutes.PUT("/:id", deps.ItemHandler.Update(types.CategorySuggestion))
				suggestionRoutes.DELETE("/:id", deps.ItemHandler.Delete(types.CategorySuggestion))
			}

			complaintRoutes := authRoutes.Group("/complaints")
			{
				complaintRoutes.POST("", deps.ItemHandler.Create(types.CategoryComplaint))
				complaintRoutes.GET("", deps.ItemHandler.List(types.CategoryComplaint))
				complaintRoutes.GET("/:id", deps.ItemHandler.Get(types.CategoryComplaint))
				complaintRoutes.PUT("/:id", deps.ItemHandler.Update(types.CategoryComplaint))
				complaintRoutes.DELETE("/:id", deps.ItemHandler.Delete(types.CategoryComplaint))
			}

			responseRoutes := authRoutes.Group("/responses")
			{
				responseRoutes.GET("", deps.ResponseHandler.List)
				responseRoutes.POST("", deps.ResponseHandler.Create)
				responseRoutes.POST("/review", deps.ResponseHandler.Review)
				responseRoutes.GET("/dashboard", deps.ResponseHandler.Dashboard)
				responseRoutes.GET("/export", deps.ResponseHandler.ExportCSV)
				responseRoutes.GET("/:id", deps.ResponseHandler.Get)
			}
		}
	}

	return r
}
