package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"eventwave/internal/utils" // Identity carried by verified tokens

	"github.com/gin-gonic/gin" // Gin web framework
)

// TokenVerifier turns a bearer token into an identity
type TokenVerifier interface {
	Verify(token string) (*utils.Identity, error)
}

// BearerAuth establishes the caller's identity from an Authorization: Bearer header.
// Requests without the header continue unauthenticated and are judged by Authorize.
func BearerAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// No bearer credential presented, let the policy decide
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		identity, err := verifier.Verify(tokenStr)                               // Verify signature and expiry
		if err != nil {
			// Same response for expired, tampered and malformed tokens
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(identityKey, identity) // Store identity in context for this request only
		c.Next()                     // Proceed to the next handler
	}
}
