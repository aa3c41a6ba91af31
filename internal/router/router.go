// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/config"
	"github.com/medolina/medolina-backend/internal/handlers"
	"github.com/medolina/medolina-backend/internal/middleware"
	"github.com/medolina/medolina-backend/internal/services"
	"github.com/medolina/medolina-backend/internal/store"
	"github.com/medolina/medolina-backend/internal/userstore"
	"github.com/medolina/medolina-backend/internal/utils"
)

// Deps carries the long-lived components the router wires together. Building
// them here (instead of inside Initialize) keeps the HTTP test suites able to
// swap in in-memory backends.
type Deps struct {
	Repo    *catalog.Repository
	Users   *userstore.Store
	Storage store.Storage
}

func Initialize(deps Deps, cfg *config.Config) *gin.Engine {
	// Initialize store layer and services
	hub := store.NewHub()
	stores := store.NewManager(deps.Storage, hub, logrus.StandardLogger())

	authService := services.NewAuthService(deps.Users, cfg)
	catalogService := services.NewCatalogService(deps.Repo)
	cartService := services.NewCartService(deps.Repo, stores)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	favoritesHandler := handlers.NewFavoritesHandler(stores, catalogService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Rate limiters: a token bucket over the whole API, a fixed window on
	// the auth endpoints.
	generalLimiter := middleware.NewRateLimiter(
		rate.Limit(cfg.RateLimit.GeneralPerSecond), cfg.RateLimit.GeneralPerSecond)
	authLimiter := middleware.NewFixedWindowLimiter(
		time.Duration(cfg.RateLimit.AuthWindowMinutes)*time.Minute,
		cfg.RateLimit.AuthMaxRequests)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/user", middleware.AuthRequired(), authHandler.GetCurrentUser)
			auth.PUT("/user", middleware.AuthRequired(), authHandler.UpdateUser)
		}

		// Catalog routes (public)
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/autocomplete", productHandler.Autocomplete)
			products.GET("/:slug", middleware.OptionalAuth(), productHandler.GetProduct)
		}

		v1.GET("/categories", productHandler.GetCategories)
		v1.GET("/sellers/:id/products", productHandler.GetSellerProducts)

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.Clear)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items", cartHandler.UpdateItem)
			cart.DELETE("/items", cartHandler.RemoveItem)
		}

		// Favorites routes
		favorites := v1.Group("/favorites")
		favorites.Use(middleware.AuthRequired())
		{
			favorites.GET("", favoritesHandler.List)
			favorites.DELETE("", favoritesHandler.Clear)
			favorites.POST("/:id/toggle", favoritesHandler.Toggle)
			favorites.DELETE("/:id", favoritesHandler.Remove)
		}
	}

	return r
}
