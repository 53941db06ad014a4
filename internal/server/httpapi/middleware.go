package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/logging"
	"github.com/blogward/blogward/internal/server/models"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "token"

const identityKey = "identity"

// Middleware bundles the authentication and authorization guards.
type Middleware struct {
	users UserDirectory
	blogs BlogStore
}

func NewMiddleware(users UserDirectory, blogs BlogStore) *Middleware {
	return &Middleware{users: users, blogs: blogs}
}

// RequireAuth rejects requests without a valid session cookie and attaches
// the resolved identity to the request context.
func (m *Middleware) RequireAuth(c *gin.Context) {
	token, err := c.Cookie(TokenCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	identity, err := m.users.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	c.Set(identityKey, *identity)
	c.Next()
}

// RequireAnonymous blocks registration and login for callers that already
// hold a valid session. A stale or invalid cookie is ignored.
func (m *Middleware) RequireAnonymous(c *gin.Context) {
	token, err := c.Cookie(TokenCookie)
	if err != nil || token == "" {
		c.Next()
		return
	}

	if _, err := m.users.Authenticate(c.Request.Context(), token); err == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You are already logged in. Logout"})
		return
	}

	c.Next()
}

// RequireBlogOwner confirms the authenticated identity owns the blog named
// by the :blogId parameter. Runs after RequireAuth. A missing blog is
// indistinguishable from someone else's blog: 403 either way.
func (m *Middleware) RequireBlogOwner(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	blog, err := m.blogs.GetByID(c.Request.Context(), c.Param("blogId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied!"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if !m.blogs.AuthorizeOwner(identity, blog) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied!"})
		return
	}

	c.Next()
}

// GetIdentity returns the authenticated identity attached by RequireAuth.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

// RequestLogger logs one line per request.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// CORS applies permissive cross-origin headers and short-circuits
// preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
