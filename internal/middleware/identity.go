package middleware

import (
	"eventwave/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	identityKey  = "identity"
	requestIDKey = "requestID"
)

// CurrentIdentity returns the identity BearerAuth established, if any
func CurrentIdentity(c *gin.Context) (*utils.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*utils.Identity)
	return identity, ok && identity != nil
}

// RequestID returns the request identifier assigned by RequestIDMiddleware
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
