package api

import (
	"net/http"

	"eventwave/internal/domain"
	"eventwave/internal/service"
	"eventwave/internal/utils"

	"github.com/gin-gonic/gin"
)

// userResponse is the public view of a user
type userResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// UpdateProfileRequest holds optional new values
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func MeHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// UpdateProfileHandler returns a new token when the username changes, since the old subject is gone
func UpdateProfileHandler(users *service.UserService, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		updated, renamed, err := users.UpdateProfile(c.Request.Context(), user.Username, service.ProfileUpdate{
			Username: req.Username,
			Email:    req.Email,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		resp := gin.H{"message": "Profile updated", "user": toUserResponse(updated)}
		if renamed {
			token, err := tokens.Issue(updated.ID, updated.Username, updated.Role)
			if err != nil {
				respondError(c, err)
				return
			}
			resp["token"] = token
		}
		c.JSON(http.StatusOK, resp)
	}
}
