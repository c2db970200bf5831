package routes

import (
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(cfg *config.Config, authn *middleware.Authenticator) *gin.Engine {
	router := gin.Default()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Session middleware backs the web login CSRF token
	store := cookie.NewStore([]byte(cfg.Auth.Secret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   cfg.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("jobnest", store))

	router.LoadHTMLGlob("templates/*")

	initWebRoutes(router, authn)

	// API version group
	api := router.Group("/api/v1")
	{
		initAuthRoutes(api, authn)
		initCandidateRoutes(api, authn)
		initHRRoutes(api, authn)
	}

	return router
}
