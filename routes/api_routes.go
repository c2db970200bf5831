package routes

import (
	"github.com/akhil-8601/JobNest/controllers"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/gin-gonic/gin"
)

// initAuthRoutes sets up the public auth endpoints
func initAuthRoutes(api *gin.RouterGroup, authn *middleware.Authenticator) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/refresh", controllers.RefreshSession)
		auth.POST("/logout", controllers.LogoutUser)
	}

	// Job browsing is public; details resolve visibility per caller
	api.GET("/jobs", controllers.ListJobs)
	api.GET("/jobs/:id", authn.OptionalAuth(), controllers.GetJobDetails)
}

// initCandidateRoutes sets up endpoints for logged-in users
func initCandidateRoutes(api *gin.RouterGroup, authn *middleware.Authenticator) {
	me := api.Group("")
	me.Use(authn.RequireAuth())
	{
		me.GET("/me", controllers.GetMe)
		me.GET("/profile", controllers.GetProfile)
		me.PUT("/profile", controllers.UpdateProfile)

		me.POST("/resumes", controllers.UploadResume)
		me.GET("/resumes", controllers.ListResumes)
		me.PUT("/resumes/:id/primary", controllers.SetPrimaryResume)
		me.DELETE("/resumes/:id", controllers.DeleteResume)

		me.POST("/jobs/:id/apply", controllers.ApplyToJob)
		me.GET("/applications", controllers.ListMyApplications)
		me.POST("/applications/:id/withdraw", controllers.WithdrawApplication)
	}
}

// initHRRoutes sets up company and hiring endpoints
func initHRRoutes(api *gin.RouterGroup, authn *middleware.Authenticator) {
	hr := api.Group("/hr")
	hr.Use(authn.RequireAuth(), authn.RequireRole(models.RoleHR))
	{
		hr.POST("/companies", controllers.CreateCompany)
		hr.GET("/companies", controllers.GetMyCompanies)
		hr.GET("/companies/:id/jobs", controllers.ListCompanyJobs)

		hr.POST("/jobs", controllers.CreateJob)
		hr.PUT("/jobs/:id", controllers.UpdateJob)
		hr.POST("/jobs/:id/publish", controllers.PublishJob)
		hr.POST("/jobs/:id/close", controllers.CloseJob)

		hr.GET("/jobs/:id/applications", controllers.ListJobApplications)
		hr.PUT("/jobs/:id/applications/:appId", controllers.UpdateApplicationStatus)
		hr.GET("/jobs/:id/applications/export/excel", controllers.DownloadApplicationsExcel)
		hr.GET("/jobs/:id/applications/export/pdf", controllers.DownloadApplicationsPDF)
	}
}
