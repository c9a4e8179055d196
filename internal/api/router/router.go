package router

import (
	"math/rand"
	"time"

	"seller-service/internal/api/handlers"
	"seller-service/internal/api/middleware"
	"seller-service/internal/config"
	"seller-service/internal/infrastructure/events"
	"seller-service/internal/infrastructure/repository"
	"seller-service/internal/infrastructure/userclient"
	interfaces "seller-service/internal/interfaces/infrastructure"
	"seller-service/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires the full HTTP surface of the seller service
func NewRouter(db *gorm.DB, cacheService interfaces.SellerCache, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())

	sellerRepo := repository.NewSellerRepository(db)
	userValidator := userclient.NewClient(
		cfg.UserService.BaseURL,
		time.Duration(cfg.UserService.TimeoutSeconds)*time.Second,
	)
	eventSink := events.NewLogrusSink()

	sellerService := service.NewSellerService(
		sellerRepo,
		cacheService,
		userValidator,
		eventSink,
		cfg.Seller.DefaultCommissionRate,
	)
	analyticsService := service.NewAnalyticsService(
		sellerRepo,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	sellerHandler := handlers.NewSellerHandler(sellerService, analyticsService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		sellers := v1.Group("/sellers")
		{
			sellers.POST("", sellerHandler.Register)
			sellers.GET("", sellerHandler.ListSellers)
			sellers.GET("/stats", sellerHandler.GetStats)
			sellers.GET("/pending-verification", sellerHandler.ListPendingVerification)
			sellers.GET("/user/:user_id", sellerHandler.GetSellerByUser)
			sellers.GET("/:id", sellerHandler.GetSeller)
			sellers.PUT("/:id", sellerHandler.UpdateProfile)
			sellers.DELETE("/:id", sellerHandler.DeleteSeller)
			sellers.PUT("/:id/banking", sellerHandler.UpdateBanking)
			sellers.POST("/:id/submit-verification", sellerHandler.SubmitForVerification)
			sellers.POST("/:id/approve", sellerHandler.Approve)
			sellers.POST("/:id/reject", sellerHandler.Reject)
			sellers.POST("/:id/suspend", sellerHandler.Suspend)
			sellers.POST("/:id/reactivate", sellerHandler.Reactivate)
			sellers.POST("/:id/products/increment", sellerHandler.IncrementProducts)
			sellers.POST("/:id/products/decrement", sellerHandler.DecrementProducts)
			sellers.POST("/:id/sales", sellerHandler.RecordSale)
			sellers.POST("/:id/rating", sellerHandler.UpdateRating)
			sellers.GET("/:id/analytics", sellerHandler.GetAnalytics)
		}
	}
	return r
}
