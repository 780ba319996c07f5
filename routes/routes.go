package routes

import (
	"case-management-api/controllers"
	"case-management-api/middleware"
	"case-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Case Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Family intake
			families := protected.Group("/families")
			{
				families.GET("", controllers.GetFamilies)
				families.GET("/:id", controllers.GetFamily)
				families.POST("", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.CreateFamily)
				families.PUT("/:id", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.UpdateFamily)
				families.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteFamily)
			}

			// Bank accounts
			bankAccounts := protected.Group("/bank-accounts")
			{
				bankAccounts.GET("/:id", controllers.GetBankAccount)
				bankAccounts.POST("", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.CreateBankAccount)
				bankAccounts.POST("/:id/decision", middleware.RequireRole(models.RoleSupervisor, models.RoleAdmin), controllers.DecideBankAccount)
			}

			// Disbursement requests
			disbursements := protected.Group("/disbursement-requests")
			{
				disbursements.GET("/:id", controllers.GetDisbursementRequest)
				disbursements.POST("", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.CreateDisbursementRequest)
				disbursements.POST("/:id/decision", middleware.RequireRole(models.RoleSupervisor, models.RoleAdmin), controllers.DecideDisbursementRequest)
			}

			// Feasibility plans
			plans := protected.Group("/feasibility-plans")
			{
				plans.GET("/:id", controllers.GetFeasibilityPlan)
				plans.POST("", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.CreateFeasibilityPlan)
				plans.POST("/:id/decision", middleware.RequireRole(models.RoleSupervisor, models.RoleAdmin), controllers.DecideFeasibilityPlan)
			}

			// Interventions
			interventions := protected.Group("/interventions")
			{
				interventions.GET("/:id", controllers.GetIntervention)
				interventions.POST("", middleware.RequireRole(models.RoleCaseWorker, models.RoleAdmin), controllers.CreateIntervention)
				interventions.POST("/:id/decision", middleware.RequireRole(models.RoleSupervisor, models.RoleAdmin), controllers.DecideIntervention)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/approval-logs", controllers.GetApprovalLogs)
				admin.POST("/bank-accounts/:id/override", controllers.OverrideBankAccountDecision)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
