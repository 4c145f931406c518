package router

import (
	"vulnguard/api"
	"vulnguard/engine"
	"vulnguard/middleware"
	"vulnguard/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(eng *engine.Engine) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.OperationLogMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	assessmentService := service.NewAssessmentService(eng)

	// API routes
	apiGroup := r.Group("/api")
	{
		// Auth routes (no auth required)
		authHandler := api.NewAuthHandler()
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
		}

		// Protected routes
		protected := apiGroup.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth routes (auth required)
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.PUT("/auth/password", authHandler.ChangePassword)

			// Asset routes
			assetHandler := api.NewAssetHandler()
			assetGroup := protected.Group("/assets")
			{
				assetGroup.GET("", assetHandler.ListAssets)
				assetGroup.GET("/:id", assetHandler.GetAsset)
				assetGroup.POST("", assetHandler.CreateAsset)
				assetGroup.PUT("/:id", assetHandler.UpdateAsset)
				assetGroup.DELETE("/:id", middleware.AdminMiddleware(), assetHandler.DeleteAsset)
			}

			// Finding routes
			findingHandler := api.NewFindingHandler()
			findingGroup := protected.Group("/findings")
			{
				findingGroup.GET("", findingHandler.ListFindings)
				findingGroup.GET("/cross-host", findingHandler.CrossHostAnalysis)
				findingGroup.GET("/:id", findingHandler.GetFinding)
				findingGroup.POST("", findingHandler.IngestFinding)
				findingGroup.PUT("/:id/status", findingHandler.UpdateFindingStatus)
				findingGroup.DELETE("/:id", middleware.AdminMiddleware(), findingHandler.DeleteFinding)
			}

			// Risk assessment routes
			riskHandler := api.NewRiskHandler(assessmentService)
			riskGroup := protected.Group("/risk")
			{
				riskGroup.POST("/findings/:id/assess", riskHandler.AssessFinding)
				riskGroup.POST("/assess-all", riskHandler.AssessAll)
			}

			// Compliance routes
			complianceHandler := api.NewComplianceHandler(assessmentService)
			complianceGroup := protected.Group("/compliance")
			{
				complianceGroup.GET("/frameworks", complianceHandler.ListFrameworks)
				complianceGroup.GET("/frameworks/:framework/controls", complianceHandler.GetFrameworkControls)
				complianceGroup.GET("/map/:type", complianceHandler.MapFindingType)
				complianceGroup.GET("/findings/:id", complianceHandler.MapFinding)
			}

			// Vulnerability intelligence routes
			intelHandler := api.NewIntelHandler()
			intelGroup := protected.Group("/intel")
			{
				intelGroup.GET("", intelHandler.ListIntel)
				intelGroup.GET("/:cve", intelHandler.GetIntel)
				intelGroup.PUT("/:cve", intelHandler.UpsertIntel)
				intelGroup.DELETE("/:cve", middleware.AdminMiddleware(), intelHandler.DeleteIntel)
			}

			// Reference data routes
			refDataHandler := api.NewRefDataHandler(eng)
			refDataGroup := protected.Group("/refdata")
			{
				refDataGroup.POST("/reload", middleware.AdminMiddleware(), refDataHandler.Reload)
			}

			// Dashboard routes
			dashboardHandler := api.NewDashboardHandler()
			dashboardGroup := protected.Group("/dashboard")
			{
				dashboardGroup.GET("/stats", dashboardHandler.GetStats)
			}
		}
	}

	return r
}
