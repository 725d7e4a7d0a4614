package middleware

import (
	"hydrolog/internal/domain"  // Importing domain models
	"hydrolog/internal/session" // Session store
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ContextUserKey is the gin context key holding the authenticated user
const ContextUserKey = "currentUser"

// SessionPage guards page routes: requests without a valid session are
// redirected to the login entry point.
func SessionPage(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, db, sessions)
		if err != nil {
			// Browser navigation gets a redirect, not an error body
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user) // Store the user in context
		c.Next()                    // Proceed to the next handler
	}
}

// SessionAPI guards data-submission routes: requests without a valid session
// get a structured unauthorized response.
func SessionAPI(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, db, sessions)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in context by the gate,
// or nil when the route was reached without one.
func CurrentUser(c *gin.Context) *domain.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// resolveUser turns the session cookie into a persisted User
func resolveUser(c *gin.Context, db *gorm.DB, sessions *session.Store) (*domain.User, error) {
	token, err := c.Cookie(session.CookieName) // Read the session cookie
	if err != nil || token == "" {
		return nil, session.ErrNoSession
	}
	userID, err := sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	var user domain.User // Fetch user from database
	if err := db.First(&user, userID).Error; err != nil {
		return nil, session.ErrNoSession
	}
	return &user, nil
}
