package main

import (
	"log"

	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/controllers"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/routes"
	"github.com/akhil-8601/JobNest/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB(cfg)

	// Wire the auth core
	codec := auth.NewTokenCodec(cfg.Auth)
	refreshStore := auth.NewRefreshTokenStore(config.DB, cfg.Auth.RefreshTTL)
	blacklist := auth.NewBlacklistStore(config.DB)
	session := auth.NewSessionService(config.DB, codec, refreshStore, blacklist)
	authn := middleware.NewAuthenticator(config.DB, codec, blacklist)

	controllers.Init(cfg, session)

	// Set up router
	router := routes.SetupRouter(cfg, authn)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
