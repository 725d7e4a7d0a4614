package api

import (
	"hydrolog/internal/domain"     // Importing domain models
	"hydrolog/internal/middleware" // Session gate helpers
	"hydrolog/internal/session"    // Session store
	"hydrolog/internal/storage"    // Upload area helpers
	"net/http"                     // HTTP status codes
	"path"                         // Relative asset paths
	"path/filepath"                // Filesystem paths
	"time"                         // Cache TTL

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// dashboardCacheTTL bounds how stale a cached dashboard payload may get
const dashboardCacheTTL = 5 * time.Minute

// projectTypes offered on the project selection page
var projectTypes = []string{"river", "lake", "coastal", "groundwater"}

// DashboardResponse is the view-layer payload for the dashboard page
type DashboardResponse struct {
	Username      string  `json:"username"`        // Display name
	Email         string  `json:"email"`           // Account email
	VisitCount    int     `json:"visit_count"`     // Successful login count
	LastLoginDate *string `json:"last_login_date"` // Most recent login date
	LastLoginTime *string `json:"last_login_time"` // Most recent login time
}

// DashboardHandler returns the logged-in user's dashboard payload.
// The payload is cached in Redis and invalidated on login.
func DashboardHandler(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Get the session user from context
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		key := dashboardCacheKey(user.ID)

		// Serve from cache when possible
		var cached DashboardResponse
		if hit, err := sessions.GetCache(c.Request.Context(), key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		resp := DashboardResponse{
			Username:      user.Username,
			Email:         user.Email,
			VisitCount:    user.VisitCount,
			LastLoginDate: user.LastLoginDate,
			LastLoginTime: user.LastLoginTime,
		}
		// Cache the payload; failures only cost the next request a DB read
		if err := sessions.SetCache(c.Request.Context(), key, resp, dashboardCacheTTL); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Warn("Dashboard cache write failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SelectProjectHandler returns the project type tags for the selection page
func SelectProjectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"projects": projectTypes})
	}
}

// DataEntryHandler echoes the requested project type back to the view layer.
// The path segment is free-form and not validated against the known tags.
func DataEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"project": c.Param("project")})
	}
}

// SubmitHandler validates and persists one measurement record plus an
// optional image asset for the session user. Form fields are stored verbatim;
// missing fields persist as empty rather than being rejected.
func SubmitHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
			return
		}

		// Store the optional image asset first. The asset write and the
		// record insert are independent best-effort steps; there is no
		// two-phase commit between them.
		imagePath := ""
		file, err := c.FormFile("image")
		if err == nil && file.Filename != "" {
			name := storage.SanitizeFilename(file.Filename)
			if name == "" || !storage.AllowedFile(name) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported image type"})
				return
			}
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id":  user.ID,
					"filename": name,
					"error":    err.Error(),
				}).Error("Image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store image"})
				return
			}
			imagePath = path.Join("uploads", name)
		}

		record := domain.Measurement{
			UserID:      user.ID,
			ProjectType: c.PostForm("project_type"),
			WaterType:   c.PostForm("water_type"),
			Date:        c.PostForm("date"),
			Time:        c.PostForm("time"),
			Latitude:    c.PostForm("latitude"),
			Longitude:   c.PostForm("longitude"),
			PinID:       c.PostForm("pin_id"),
			ImagePath:   imagePath,
			Temperature: c.PostForm("temperature"),
			PH:          c.PostForm("pH"),
			DO:          c.PostForm("DO"),
			TDS:         c.PostForm("TDS"),
			Chlorophyll: c.PostForm("chlorophyll"),
			TA:          c.PostForm("TA"),
			DIC:         c.PostForm("DIC"),
		}
		if err := db.Create(&record).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Measurement insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save measurement"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":        user.ID,
			"measurement_id": record.ID,
			"project_type":   record.ProjectType,
			"has_image":      imagePath != "",
		}).Info("Measurement recorded")

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
