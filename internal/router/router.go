package router

import (
	"hydrolog/internal/api"        // API handlers
	"hydrolog/internal/config"     // Application configuration
	"hydrolog/internal/middleware" // Session gate
	"hydrolog/internal/session"    // Session store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// New builds the Gin engine with all routes wired up
func New(db *gorm.DB, sessions *session.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// Auth routes
	r.POST("/register", api.RegisterHandler(db))            // Registration endpoint
	r.POST("/login", api.LoginHandler(db, sessions, cfg))   // Login endpoint
	r.GET("/logout", api.LogoutHandler(sessions))           // Logout endpoint

	// Unauthenticated sensor stub and the upload area
	r.GET("/api/sensor_data", api.SensorDataHandler())
	r.Static("/uploads", cfg.UploadDir)

	// Page routes (session required, redirect to login when absent)
	pages := r.Group("/")
	pages.Use(middleware.SessionPage(db, sessions))
	pages.GET("", api.DashboardHandler(sessions))             // Dashboard endpoint
	pages.GET("select_project", api.SelectProjectHandler())   // Project selection endpoint
	pages.GET("data_entry/:project", api.DataEntryHandler())  // Data entry endpoint

	// Submission route (session required, structured 401 when absent)
	submit := r.Group("/submit")
	submit.Use(middleware.SessionAPI(db, sessions))
	submit.POST("", api.SubmitHandler(db, cfg.UploadDir)) // Measurement submission endpoint

	return r
}
