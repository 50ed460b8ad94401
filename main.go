package main

import (
	"log"

	"guaravita-backend/config"
	"guaravita-backend/database"
	"guaravita-backend/handlers"
	"guaravita-backend/middleware"
	"guaravita-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Connect to database; without DATABASE_URL the server still boots
	// in "not configured" mode and every ledger route answers 503.
	var store database.Store
	if cfg.Configured() {
		store, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
	} else {
		log.Println("⚠️  DATABASE_URL not set, starting in not-configured mode")
	}

	// Connect to Redis (optional, won't crash if unavailable)
	rdb := database.ConnectRedis(cfg.RedisURL)

	// Services
	ledger := services.NewLedger(store)
	mood := services.NewMoodService(cfg.GeminiAPIKey)
	notifier := services.NewNotificationService(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.AdminEmail, cfg.AppName)
	sessions := services.NewSessionStore(rdb)

	h := handlers.New(cfg, ledger, mood, notifier, sessions)

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"service":    cfg.AppName,
			"configured": cfg.Configured(),
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/admin", h.AdminLogin)
		auth.POST("/logout", middleware.AdminRequired(cfg.JWTSecret, sessions), h.AdminLogout)
	}

	// ==========================================
	// API ROUTES
	// ==========================================
	api := r.Group("/api")
	api.GET("/config", h.GetConfigStatus)

	ledgerAPI := api.Group("")
	ledgerAPI.Use(middleware.RequireConfigured(cfg.Configured()))
	{
		// Guest view
		ledgerAPI.GET("/state", h.GetPublicState)
		ledgerAPI.GET("/mood", h.GetMood)
		ledgerAPI.POST("/requests", h.CreateRequest)

		// Admin view
		admin := ledgerAPI.Group("/admin")
		admin.Use(middleware.AdminRequired(cfg.JWTSecret, sessions))
		{
			admin.GET("/state", h.GetAdminState)
			admin.POST("/debtors", h.CreateDebtor)
			admin.POST("/debtors/:id/adjust", h.AdjustAmount)
			admin.POST("/debtors/:id/visibility", h.ToggleVisibility)
			admin.DELETE("/debtors/:id", h.RemoveDebtor)
			admin.POST("/requests/:id/process", h.ProcessRequest)
		}
	}

	// Start server
	addr := "0.0.0.0:" + cfg.Port
	log.Printf("🚀 %s server starting on %s", cfg.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
