package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edusync/edusync/internal/app/controllers"
	"github.com/edusync/edusync/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	activityController *controllers.ActivityController,
	profileController *controllers.ProfileController,
	chatController *controllers.ChatController,
	settingsController *controllers.SettingsController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	storagePath string,
) {
	// Health and metrics live outside the API version group
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stored avatars are served as static files
	router.Static("/uploads", storagePath)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/password", authController.UpdatePassword)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.POST("", studentController.Create)
			students.GET("/stats/genero", studentController.StatsByGender)
			students.GET("/stats/facultad", studentController.StatsByFacultad)
			students.GET("/:cedula", studentController.Get)
			students.PUT("/:cedula", studentController.Update)
			students.DELETE("/:cedula", studentController.Delete)
			students.GET("/:cedula/export", studentController.Export)
		}

		authenticated.GET("/activities", activityController.Recent)

		authenticated.GET("/dashboard/summary", dashboardController.Summary)
		authenticated.GET("/dashboard/statistics", dashboardController.Statistics)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.Get)
			profile.PUT("", profileController.Update)
			profile.POST("/avatar", profileController.UploadAvatar)
			profile.DELETE("/avatar", profileController.RemoveAvatar)
		}

		assistant := authenticated.Group("/assistant")
		{
			assistant.GET("/greeting", chatController.Greeting)
			assistant.POST("/messages", chatController.SendMessage)
		}
		authenticated.GET("/ws/assistant", chatController.Websocket)

		settings := authenticated.Group("/settings")
		{
			settings.GET("", settingsController.Get)
			settings.PUT("", settingsController.Update)
			settings.POST("/reset", settingsController.Reset)
		}
	}
}
