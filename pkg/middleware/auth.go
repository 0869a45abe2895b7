package middleware

import (
	"net/http"
	"os"
	"strings"

	"citycare/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bearerToken pulls the credential out of the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// adminAPIKeys are static credentials granting admin access, comma-separated
// in ADMIN_API_KEYS.
func adminAPIKeys() map[string]bool {
	keys := map[string]bool{}
	for _, k := range strings.Split(os.Getenv("ADMIN_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = true
		}
	}
	return keys
}

// RequireAuth validates the access token and stores the caller's identity
// in the request context.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token identity"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin grants access to admin accounts and to callers presenting a
// static admin API key.
func RequireAdmin(authService *auth.Service) gin.HandlerFunc {
	keys := adminAPIKeys()

	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		if keys[token] {
			c.Set("user_name", "Admin API")
			c.Set("is_admin", true)
			c.Next()
			return
		}

		claims, err := authService.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		if userID, err := uuid.Parse(claims.UserID); err == nil {
			c.Set("user_id", userID)
		}
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("is_admin", true)
		c.Next()
	}
}
