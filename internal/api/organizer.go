package api

import (
	"net/http" // HTTP status codes
	"time"     // Event start times

	"eventwave/internal/domain"  // Importing domain models
	"eventwave/internal/service" // Event and review services
	"eventwave/internal/utils"   // Cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// EventRequest is the body of create and update calls
type EventRequest struct {
	Title       string    `json:"title"`       // Event title
	Description string    `json:"description"` // Free text
	StartTime   time.Time `json:"start_time"`  // RFC 3339 start time
	Location    string    `json:"location"`    // Venue
	Capacity    int       `json:"capacity"`    // Seats, must be positive
	Price       float64   `json:"price"`       // Ticket price
	Category    string    `json:"category"`    // One of the known categories
	ImageURL    string    `json:"image_url"`   // Image reference
}

func (r EventRequest) input() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		Location:    r.Location,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

// CreateEventHandler creates an event owned by the calling organizer
func CreateEventHandler(users *service.UserService, events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		var req EventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		event, err := events.Create(c.Request.Context(), user.ID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

// MyEventsHandler lists the caller's own events
func MyEventsHandler(users *service.UserService, events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		list, err := events.ListByOrganizer(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetOwnedEventHandler returns one of the caller's events
func GetOwnedEventHandler(users *service.UserService, events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		event, err := events.GetOwned(c.Request.Context(), user.ID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// UpdateEventHandler replaces an event's details and drops its cached copy
func UpdateEventHandler(users *service.UserService, events *service.EventService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		event, err := events.Update(c.Request.Context(), user.ID, eventID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		cache.Delete(c.Request.Context(), utils.EventKey(eventID)) // Invalidate event cache
		c.JSON(http.StatusOK, event)
	}
}

// DeleteEventHandler removes an event with its registrations, reviews and wishlist entries
func DeleteEventHandler(users *service.UserService, events *service.EventService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		if err := events.Delete(c.Request.Context(), user.ID, eventID); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate event and summary cache
		cache.Delete(c.Request.Context(), utils.EventKey(eventID), utils.ReviewSummaryKey(eventID))
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
	}
}

// OrganizerReviewsHandler lists reviews with feedback for the event's organizer
func OrganizerReviewsHandler(users *service.UserService, reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		list, err := reviews.ListForOrganizer(c.Request.Context(), user.ID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ReviewSummaryHandler returns the review count of an event, cached in Redis
func ReviewSummaryHandler(users *service.UserService, reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, users); !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.ReviewSummaryKey(eventID) // Cache key for the summary
		var summary domain.ReviewSummary
		// If found in cache, return it
		if cache.Get(ctx, cacheKey, &summary) {
			c.JSON(http.StatusOK, summary)
			return
		}
		fresh, err := reviews.Summary(ctx, eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.Set(ctx, cacheKey, fresh) // Cache the summary
		c.JSON(http.StatusOK, fresh)
	}
}
