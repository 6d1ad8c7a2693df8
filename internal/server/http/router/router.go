package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/config"
	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/server/http/handlers"
	"github.com/polkiloo/campusfood/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CampusFacade, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Route not found"})
	})

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/student/register", authHandler.RegisterStudent)
	auth.POST("/student/login", authHandler.LoginStudent)
	auth.POST("/vendor/register", authHandler.RegisterVendor)
	auth.POST("/vendor/login", authHandler.LoginVendor)

	student := api.Group("/student")
	student.Use(middleware.AuthRequired(facade, model.RoleStudent))
	student.GET("/vendors", catalogHandler.OpenVendors)
	student.GET("/vendors/:id", catalogHandler.Vendor)
	student.GET("/vendors/:id/reviews", reviewHandler.VendorReviews)
	student.GET("/menu/:vendorId", catalogHandler.Menu)
	student.POST("/orders", orderHandler.Place)
	student.GET("/orders", orderHandler.StudentOrders)
	student.PATCH("/orders/:id/resubmit", orderHandler.Resubmit)
	student.PATCH("/orders/:id/complete", orderHandler.Complete)
	student.DELETE("/orders/:id", orderHandler.Cancel)
	student.POST("/reviews", reviewHandler.Submit)

	vendor := api.Group("/vendor")
	vendor.Use(middleware.AuthRequired(facade, model.RoleVendor))
	vendor.GET("/stats", catalogHandler.Stats)
	vendor.GET("/menu", catalogHandler.VendorMenu)
	vendor.POST("/menu", catalogHandler.AddMenuItem)
	vendor.PUT("/menu/:id", catalogHandler.UpdateMenuItem)
	vendor.DELETE("/menu/:id", catalogHandler.DeleteMenuItem)
	vendor.PATCH("/availability", catalogHandler.UpdateAvailability)
	vendor.GET("/orders", orderHandler.VendorOrders)
	vendor.PATCH("/orders/:id/verify", orderHandler.Verify)
	vendor.PATCH("/orders/:id/status", orderHandler.Advance)
	vendor.GET("/reviews", reviewHandler.OwnReviews)

	return engine
}
