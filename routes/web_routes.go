package routes

import (
	"github.com/akhil-8601/JobNest/controllers"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/gin-gonic/gin"
)

// initWebRoutes sets up the server-rendered pages
func initWebRoutes(router *gin.Engine, authn *middleware.Authenticator) {
	router.GET("/login", controllers.ShowLoginPage)
	router.POST("/login", controllers.WebLogin)
	router.POST("/logout", controllers.WebLogout)

	router.GET("/dashboard", authn.RequireWebAuth(), controllers.ShowDashboard)
}
