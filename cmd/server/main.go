package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/termbridge/backend/config"
	"github.com/termbridge/backend/internal/auth"
	"github.com/termbridge/backend/internal/cache"
	"github.com/termbridge/backend/internal/database"
	"github.com/termbridge/backend/internal/events"
	"github.com/termbridge/backend/internal/handlers"
	"github.com/termbridge/backend/internal/middleware"
	"github.com/termbridge/backend/internal/models"
	"github.com/termbridge/backend/internal/moderation"
	"github.com/termbridge/backend/internal/repository"
	"github.com/termbridge/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	log.Println("Running database migrations...")
	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Connect to Redis
	redis, err := cache.NewRedisClient(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Println("Running without Redis - caching and the live moderation feed are disabled")
		redis = nil
	} else {
		defer redis.Close()
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Seed the default admin account
	if cfg.Admin.Password != "" {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		if _, err := userRepo.EnsureAdmin(cfg.Admin.Email, hash); err != nil {
			log.Printf("Warning: failed to ensure admin account: %v", err)
		} else {
			log.Printf("Admin account ready: %s", cfg.Admin.Email)
		}
	}

	// Content facade
	engine := moderation.NewEngine()
	contentService := service.NewContentService(contentRepo, reviewRepo, categoryRepo, engine)

	// Moderation event feed (only if Redis is available)
	var hub *events.Hub
	var feedHandler *events.Handler
	if redis != nil {
		hub = events.NewHub(redis)
		go hub.Run()
		feedHandler = events.NewHandler(hub, jwtService)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtService)
	contentHandler := handlers.NewContentHandler(contentService, categoryRepo, redis, hub)
	moderationHandler := handlers.NewModerationHandler(contentService, redis, hub)

	// Initialize rate limiter for submission endpoints
	rateLimiter := middleware.NewRateLimiter(cfg.API.RateLimitSubmissionsPerSec)
	rateLimiter.Cleanup()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}
	router.GET("/api/content/approved", contentHandler.GetApproved)
	router.GET("/api/categories", contentHandler.GetCategories)

	// Moderation feed (only if Redis is available)
	if feedHandler != nil {
		router.GET("/ws/moderation", feedHandler.HandleModerationFeed)
	}

	// Protected routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	{
		// User routes
		api.GET("/me", authHandler.GetMe)

		// Contributor content routes
		api.POST("/content/draft", middleware.RateLimitMiddleware(rateLimiter), contentHandler.SaveDraft)
		api.POST("/content/submit", middleware.RateLimitMiddleware(rateLimiter), contentHandler.SubmitForReview)
		api.PUT("/content/:id", contentHandler.UpdateContent)
		api.GET("/content/mine", contentHandler.GetMine)

		// Delete is admin-only; the gate is enforced once, here.
		api.DELETE("/content/:id", middleware.RequireRole(models.RoleAdmin), contentHandler.DeleteContent)

		// Moderation routes (role checked inside the service)
		api.GET("/content/pending", moderationHandler.GetPending)
		api.PUT("/content/:id/approve", moderationHandler.Approve)
		api.PUT("/content/:id/reject", moderationHandler.Reject)
		api.GET("/content/:id/reviews", moderationHandler.GetReviewHistory)
		api.GET("/admin/stats", moderationHandler.GetStats)
		api.GET("/admin/approved", moderationHandler.GetApprovedByMe)
		api.GET("/admin/rejected", moderationHandler.GetRejectedByMe)
	}

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Starting termbridge server on %s (env: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
