package middleware

import (
	"net/http"
	"strings"

	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const (
	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"
	// HostKey holds the authenticated host subject in the gin context.
	HostKey = "host"
)

// AuthMiddleware admits requests carrying an HS256 bearer token signed with secret.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration"})
			return
		}
		auth := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if auth == "" || !strings.HasPrefix(auth, prefix) {
			logger.Debug(ctx, "Missing or invalid Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len(prefix):])
		token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			logger.Debug(ctx, "JWT parse failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(HostKey, token.Claims.(*jwt.RegisteredClaims).Subject)
		c.Next()
	}
}

// RequestID tags the request context logger with an id, reusing the
// caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Locale resolves the guest's language from ?lang= or Accept-Language,
// falling back to def.
func Locale(def language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"), def)
		c.Request = c.Request.WithContext(i18n.WithTag(c.Request.Context(), tag))
		c.Header("Content-Language", tag.String())
		c.Next()
	}
}
