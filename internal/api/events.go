package api

import (
	"net/http" // HTTP status codes
	"strings"  // Trimming path filters
	"time"     // Date range parsing

	"eventwave/internal/domain"     // Importing domain models
	"eventwave/internal/repository" // Event filters
	"eventwave/internal/service"    // Services
	"eventwave/internal/utils"      // Cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// eventResponse is an event as seen by one caller
type eventResponse struct {
	domain.Event
	InWishlist bool `json:"in_wishlist"` // Whether the caller saved this event
}

// BrowseDeps groups what the attendee browsing handlers share
type BrowseDeps struct {
	Users    *service.UserService
	Events   *service.EventService
	Wishlist *service.WishlistService
	Cache    *utils.Cache
}

// withWishlist marks the caller's saved events
func withWishlist(c *gin.Context, d BrowseDeps, user *domain.User, events []domain.Event) ([]eventResponse, bool) {
	saved, err := d.Wishlist.EventIDs(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = eventResponse{Event: e, InWishlist: saved[e.ID]}
	}
	return out, true
}

// ListEventsHandler returns a page of all events
func ListEventsHandler(d BrowseDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, d.Users)
		if !ok {
			return
		}
		page, pageSize := pagination(c)
		offset := (page - 1) * pageSize // Calculate offset for pagination
		events, total, err := d.Events.List(c.Request.Context(), repository.EventFilter{}, repository.Page{Offset: offset, Limit: pageSize})
		if err != nil {
			respondError(c, err)
			return
		}
		resp, ok := withWishlist(c, d, user, events)
		if !ok {
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"events":      resp,       // Events on this page
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of events
			"total_pages": totalPages, // Total pages
		})
	}
}

// GetEventHandler returns one event, read through the Redis cache
func GetEventHandler(d BrowseDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, d.Users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var event domain.Event
		// Try to get from cache, fall back to the store
		if !d.Cache.Get(ctx, utils.EventKey(eventID), &event) {
			fresh, err := d.Events.Get(ctx, eventID)
			if err != nil {
				respondError(c, err)
				return
			}
			event = *fresh
			d.Cache.Set(ctx, utils.EventKey(eventID), event) // Cache the event
		}
		resp, ok := withWishlist(c, d, user, []domain.Event{event})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp[0])
	}
}

// filterFunc builds a filter from the request or writes a 400 and returns false
type filterFunc func(c *gin.Context) (repository.EventFilter, bool)

// FilterEventsHandler lists the events matching a simple predicate.
// An empty result is 204 when emptyNoContent is set.
func FilterEventsHandler(d BrowseDeps, build filterFunc, emptyNoContent bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, d.Users)
		if !ok {
			return
		}
		filter, ok := build(c)
		if !ok {
			return
		}
		events, _, err := d.Events.List(c.Request.Context(), filter, repository.Page{})
		if err != nil {
			respondError(c, err)
			return
		}
		if len(events) == 0 && emptyNoContent {
			c.Status(http.StatusNoContent)
			return
		}
		resp, ok := withWishlist(c, d, user, events)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ByTitle, ByDescription and ByLocation match a case-insensitive substring from the path
func ByTitle(c *gin.Context) (repository.EventFilter, bool) {
	return repository.EventFilter{TitleContains: strings.TrimSpace(c.Param("title"))}, true
}

func ByDescription(c *gin.Context) (repository.EventFilter, bool) {
	return repository.EventFilter{DescriptionContains: strings.TrimSpace(c.Param("description"))}, true
}

func ByLocation(c *gin.Context) (repository.EventFilter, bool) {
	return repository.EventFilter{LocationContains: strings.TrimSpace(c.Param("location"))}, true
}

// ByCategory rejects unknown categories with 400
func ByCategory(c *gin.Context) (repository.EventFilter, bool) {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return repository.EventFilter{}, false
	}
	return repository.EventFilter{Category: category}, true
}

// ByDateRange reads RFC 3339 start and end query parameters
func ByDateRange(c *gin.Context) (repository.EventFilter, bool) {
	start, errStart := time.Parse(time.RFC3339, c.Query("start"))
	end, errEnd := time.Parse(time.RFC3339, c.Query("end"))
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be RFC 3339 timestamps"})
		return repository.EventFilter{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return repository.EventFilter{}, false
	}
	return repository.EventFilter{StartsAfter: &start, StartsBefore: &end}, true
}

// myRegistration is one of the caller's registrations with its event
type myRegistration struct {
	RegistrationID uint                      `json:"registration_id"`
	Status         domain.RegistrationStatus `json:"status"`
	RegisteredAt   time.Time                 `json:"registered_at"`
	Event          *domain.Event             `json:"event"`
}

// MyRegistrationsHandler lists the caller's registrations
func MyRegistrationsHandler(users *service.UserService, regs *service.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		list, err := regs.ListForUser(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]myRegistration, 0, len(list))
		for _, r := range list {
			resp = append(resp, myRegistration{RegistrationID: r.ID, Status: r.Status, RegisteredAt: r.CreatedAt, Event: r.Event})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ReviewRequest is the body of a new review
type ReviewRequest struct {
	Feedback string `json:"feedback"`
}

// CreateReviewHandler stores the caller's review and drops the cached summary
func CreateReviewHandler(users *service.UserService, reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		review, err := reviews.Create(c.Request.Context(), user.ID, eventID, req.Feedback)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.Delete(c.Request.Context(), utils.ReviewSummaryKey(eventID)) // Invalidate summary cache
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
	}
}

// EventReviewsHandler lists an event's reviews without feedback text
func EventReviewsHandler(users *service.UserService, reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, users); !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		list, err := reviews.ListForEvent(c.Request.Context(), eventID, false)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
