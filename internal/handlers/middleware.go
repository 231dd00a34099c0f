package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
)

const (
	// SessionCookieName is the browser cookie holding the opaque session token.
	SessionCookieName = "session_token"

	contextKeySession = "session"
)

// SetupMiddleware sets up common middleware for the Gin router
func SetupMiddleware(router *gin.Engine) {
	router.Use(RequestIDMiddleware())
	router.Use(gin.Recovery())
	router.Use(SecurityMiddleware())
}

// RequestIDMiddleware generates a unique request ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// SessionMiddleware resolves the session cookie and attaches the session to
// the request context. Requests without a live session pass through
// anonymous; the guards below decide what that means per route.
func SessionMiddleware(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, sessions.ErrSessionNotFound) {
				c.String(http.StatusInternalServerError, "session lookup failed")
				c.Abort()
				return
			}
			// Stale cookie, treat as anonymous.
			c.Next()
			return
		}

		c.Set(contextKeySession, session)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole redirects authenticated users of the wrong role to their
// dashboard instead of exposing the page.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if session.Role != role {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-logged-in users straight to the
// dashboard, used on the login page.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
