package api

import (
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hotel-occupancy-backend/config"
	"hotel-occupancy-backend/internal/auth"
	"hotel-occupancy-backend/internal/mw"
	"hotel-occupancy-backend/internal/occupancy"
	"hotel-occupancy-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, m *occupancy.Manager, authSvc *auth.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, m, authSvc, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Response cache for the product catalog, the one read-mostly surface.
	// Room listings go through the redis directory instead.
	catalogTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	catalogStore := cache.New(catalogTTL, 2*catalogTTL)
	catalogCache := mw.Cache(catalogStore, catalogTTL)
	bustCatalog := func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			mw.Bust(catalogStore)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter)

	api.POST("/auth/login", handler.Login)
	api.POST("/auth/register", handler.Register)

	protected := api.Group("")
	protected.Use(mw.RequireAuth(authSvc))
	{
		protected.GET("/auth/profile", handler.Profile)

		protected.POST("/rooms", handler.CreateRoom)
		protected.GET("/rooms", handler.ListRooms)
		protected.GET("/rooms/:id", handler.GetRoom)
		protected.PUT("/rooms/:id", handler.UpdateRoom)
		protected.PATCH("/rooms/:id/status", handler.UpdateRoomStatus)
		protected.DELETE("/rooms/:id", handler.DeleteRoom)

		protected.POST("/occupations", handler.CreateOccupation)
		protected.GET("/occupations", handler.ListOccupations)
		protected.GET("/occupations/:id", handler.GetOccupation)
		protected.GET("/occupations/room/:roomId", handler.ActiveOccupationByRoom)
		protected.POST("/occupations/:id/consumptions", handler.AddConsumption)
		protected.POST("/occupations/:id/checkout", handler.CheckOut)
		protected.DELETE("/occupations/:id", handler.DeleteOccupation)

		protected.POST("/products", bustCatalog, handler.CreateProduct)
		protected.GET("/products", catalogCache, handler.ListProducts)
		protected.GET("/products/:id", catalogCache, handler.GetProduct)
		protected.PUT("/products/:id", bustCatalog, handler.UpdateProduct)
		protected.DELETE("/products/:id", bustCatalog, handler.DeleteProduct)

		protected.GET("/subscriptions", handler.GetSubscription)
		protected.PUT("/subscriptions", handler.PutSubscription)
		protected.DELETE("/subscriptions", handler.DeleteSubscription)
		protected.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
