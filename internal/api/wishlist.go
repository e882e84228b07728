package api

import (
	"net/http"

	"eventwave/internal/service"

	"github.com/gin-gonic/gin"
)

// AddToWishlistHandler answers 201 when added and 200 when the event was already saved
func AddToWishlistHandler(users *service.UserService, wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		added, err := wishlist.Add(c.Request.Context(), user.ID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !added {
			c.JSON(http.StatusOK, gin.H{"message": "Event already in wishlist"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Event added to wishlist"})
	}
}

func RemoveFromWishlistHandler(users *service.UserService, wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		if err := wishlist.Remove(c.Request.Context(), user.ID, eventID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event removed from wishlist"})
	}
}

func ListWishlistHandler(users *service.UserService, wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		items, err := wishlist.List(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
