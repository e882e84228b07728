package middleware

import (
	"context"  // Credential lookups are blocking
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"eventwave/internal/domain" // Users and roles

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Body-only binders
	"github.com/sirupsen/logrus"       // Logging
)

// CredentialVerifier checks a username and password pair.
// Unknown users and wrong passwords both yield domain.ErrInvalidCredentials.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// TokenIssuer signs tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uint, username string, role domain.Role) (string, error)
}

// LoginRequest is the login form, accepted as JSON or as a url-encoded body
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // Username must be provided
	Password string `json:"password" form:"password" binding:"required"` // Password must be provided
}

// LoginGate exchanges credentials from the request body for a token
func LoginGate(verifier CredentialVerifier, issuer TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := bindBody(c, &req); err != nil {
			// If binding fails, return bad request
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		user, err := verifier.Authenticate(c.Request.Context(), req.Username, req.Password)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Never say which half was wrong
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"request_id": RequestID(c), "error": err.Error()}).Error("login lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		token, err := issuer.Issue(user.ID, user.Username, user.Role) // Generate JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("token issue failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		logrus.WithFields(logrus.Fields{"user_id": user.ID, "request_id": RequestID(c)}).Info("user logged in")
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
	}
}

// bindBody reads from the body only; query parameters and headers are ignored
func bindBody(c *gin.Context, dest any) error {
	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		return c.ShouldBindWith(dest, binding.FormPost)
	case binding.MIMEMultipartPOSTForm:
		return c.ShouldBindWith(dest, binding.FormMultipart)
	default:
		return c.ShouldBindJSON(dest)
	}
}
