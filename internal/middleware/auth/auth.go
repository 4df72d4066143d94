// Request guards built on the authentication resolver.
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/auth"
)

// UserIDKey is the gin context key holding the verified caller id.
const UserIDKey = "userID"

func cookieMap(c *gin.Context) map[string]string {
	cookies := make(map[string]string)
	for _, cookie := range c.Request.Cookies() {
		cookies[cookie.Name] = cookie.Value
	}
	return cookies
}

// RequireAuth rejects the request with 401 unless it carries a verifiable
// token. Handlers behind it can rely on UserIDKey being set.
func RequireAuth(resolver *auth.Resolver, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := resolver.ExtractToken(cookieMap(c), c.GetHeader("Authorization"))
		userID, err := resolver.Verify(token)
		if err != nil {
			status, body := apperrors.ToResponse(
				apperrors.NewUnauthorized("unauthorized", err), c.Request.URL.Path, devMode)
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// Identify attaches the caller id when a valid token is present and stays
// silent otherwise. Used by endpoints open to anonymous callers.
func Identify(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolver.TryResolve(cookieMap(c), c.GetHeader("Authorization")); ok {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// CallerID reads the identity a guard attached, empty when anonymous.
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
