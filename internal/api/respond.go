package api

import (
	"errors"   // Error classification
	"math"     // Page bound
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"eventwave/internal/domain"     // Error classes
	"eventwave/internal/middleware" // Caller identity
	"eventwave/internal/service"    // User resolution

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	defaultPageSize = 20  // Default page size
	maxPageSize     = 100 // Largest page a client may ask for
)

// maxPage keeps (page-1)*pageSize from overflowing
const maxPage = math.MaxInt / maxPageSize

// respondError maps an error class to a status code. Unknown errors never reach the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": middleware.RequestID(c),
			"error":      err.Error(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUser loads the caller's record. The token must still describe that record:
// a subject that no longer exists, or now names another account or role, is unauthenticated.
func currentUser(c *gin.Context, users *service.UserService) (*domain.User, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, err := users.Resolve(c.Request.Context(), identity.Username)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if user.ID != identity.UserID || user.Role != identity.Role {
		// Username was released and taken by someone else
		logrus.WithFields(logrus.Fields{
			"token_user_id": identity.UserID,
			"user_id":       user.ID,
			"request_id":    middleware.RequestID(c),
		}).Warn("stale token rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// pagination reads page and page_size, falling back to defaults on bad input
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1                   // Default page number
	pageSize = defaultPageSize // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = min(v, maxPage) // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}
