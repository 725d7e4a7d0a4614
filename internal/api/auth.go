package api

import (
	"errors"                    // Error comparison
	"hydrolog/internal/config"  // Application configuration
	"hydrolog/internal/domain"  // Importing domain models
	"hydrolog/internal/session" // Session store
	"net/http"                  // HTTP status codes
	"strconv"                   // String conversion
	"strings"                   // String manipulation
	"time"                      // Login timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterHandler creates a new user account from a registration form post
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")
		confirm := c.PostForm("confirm_password")

		// Validate the form fields
		if username == "" || email == "" || password == "" || confirm == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
			return
		}
		if password != confirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match."})
			return
		}

		// Reject usernames and emails that are already taken
		var existing domain.User
		err := db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		err = db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: username, Email: email, PasswordHash: string(hash)}
		// The unique indexes catch a racing duplicate that slipped past the
		// checks above; at most one of two simultaneous registrations lands
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken."})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")

		// Send the new user to the login page
		c.Redirect(http.StatusSeeOther, "/login")
	}
}

// LoginHandler authenticates a user and establishes a session
func LoginHandler(db *gorm.DB, sessions *session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		var user domain.User // Fetch user from database
		// An unknown username and a failed hash check surface the same
		// message so the response does not leak which field was wrong
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		// Establish the session before mutating login bookkeeping
		token, err := sessions.Issue(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Session issue failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
			return
		}

		// Bump the visit count and stamp the last login in server local time
		now := time.Now()
		loginDate := now.Format("02-01-2006")
		loginTime := now.Format("03:04 PM")
		user.VisitCount++
		user.LastLoginDate = &loginDate
		user.LastLoginTime = &loginTime
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update login record"})
			return
		}

		// Invalidate the cached dashboard payload, it holds the old counters
		if err := sessions.DeleteCache(c.Request.Context(), dashboardCacheKey(user.ID)); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Warn("Dashboard cache invalidation failed")
		}

		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"username":    user.Username,
			"visit_count": user.VisitCount,
		}).Info("User logged in")

		c.SetCookie(session.CookieName, token, int(cfg.SessionTTL.Seconds()), "/", "", cfg.IsProd, true)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// LogoutHandler clears the current session unconditionally
func LogoutHandler(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
			// Revocation never fails the logout; an unknown token is a no-op
			if err := sessions.Revoke(c.Request.Context(), token); err != nil {
				logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Session revoke failed")
			}
		}
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true) // Expire the cookie
		c.Redirect(http.StatusFound, "/login")
	}
}

// dashboardCacheKey is the Redis cache key for a user's dashboard payload
func dashboardCacheKey(userID uint) string {
	return "dashboard:user:" + strconv.Itoa(int(userID))
}
