package api

import (
	"net/http" // HTTP status codes

	"eventwave/internal/service" // Account services
	"eventwave/internal/utils"   // Token issuing

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Valid email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
	Role     string `json:"role" binding:"required"`        // ATTENDEE or ORGANIZER
}

// RegisterHandler creates an account and signs the user in straight away
func RegisterHandler(creds *service.CredentialService, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := creds.SignUp(c.Request.Context(), service.SignUpInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := tokens.Issue(user.ID, user.Username, user.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "token": token})
	}
}

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
