package api

import (
	"net/http" // HTTP status codes
	"time"     // Event start time

	"eventwave/internal/domain"  // Importing domain models
	"eventwave/internal/service" // Registration engine

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterForEventRequest names the event to register for
type RegisterForEventRequest struct {
	EventID uint `json:"event_id" binding:"required"` // Event to register for
}

// UnregisterRequest names the registration to remove
type UnregisterRequest struct {
	UserID  uint `json:"user_id" binding:"required"`  // Must be the caller
	EventID uint `json:"event_id" binding:"required"` // Event to leave
}

type eventSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Location  string    `json:"location"`
}

// registrationResponse distinguishes confirmed, already registered and full
type registrationResponse struct {
	Status         service.RegistrationOutcome `json:"status"`
	Message        string                      `json:"message"`
	RegistrationID uint                        `json:"registration_id,omitempty"`
	User           userResponse                `json:"user"`
	Event          eventSummary                `json:"event"`
}

// outcomeReplies maps each outcome to its status code and message
var outcomeReplies = map[service.RegistrationOutcome]struct {
	code    int
	message string
}{
	service.OutcomeConfirmed:         {http.StatusCreated, "Registration successful."},
	service.OutcomeAlreadyRegistered: {http.StatusOK, "Already registered."},
	service.OutcomeFull:              {http.StatusConflict, "Event is full."},
}

// RegisterForEventHandler registers the caller; :userId must be the caller's own id
func RegisterForEventHandler(users *service.UserService, regs *service.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		userID, ok := pathID(c, "userId")
		if !ok {
			return
		}
		if userID != user.ID {
			respondError(c, domain.ErrForbidden)
			return
		}
		var req RegisterForEventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		result, err := regs.Register(c.Request.Context(), userID, req.EventID)
		if err != nil {
			respondError(c, err)
			return
		}

		reply := outcomeReplies[result.Outcome]
		resp := registrationResponse{
			Status:  result.Outcome,
			Message: reply.message,
			User:    toUserResponse(result.User),
			Event: eventSummary{
				ID:        result.Event.ID,
				Title:     result.Event.Title,
				StartTime: result.Event.StartTime,
				Location:  result.Event.Location,
			},
		}
		if result.Registration != nil {
			resp.RegistrationID = result.Registration.ID
		}
		c.JSON(reply.code, resp)
	}
}

// UnregisterHandler removes the caller's registration
func UnregisterHandler(users *service.UserService, regs *service.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		var req UnregisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.UserID != user.ID {
			respondError(c, domain.ErrForbidden)
			return
		}
		if err := regs.Unregister(c.Request.Context(), req.UserID, req.EventID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Unregistered successfully."})
	}
}

// GetRegistrationHandler shows a registration to its owner or to an organizer
func GetRegistrationHandler(users *service.UserService, regs *service.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		registrationID, ok := pathID(c, "registrationId")
		if !ok {
			return
		}
		reg, err := regs.Get(c.Request.Context(), registrationID)
		if err != nil {
			respondError(c, err)
			return
		}
		if reg.UserID != user.ID && user.Role != domain.RoleOrganizer {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "registration_id": reg.ID}).Debug("registration read denied")
			respondError(c, domain.ErrForbidden)
			return
		}
		c.JSON(http.StatusOK, reg)
	}
}

// ListAttendeesHandler lists the users registered for an event
func ListAttendeesHandler(users *service.UserService, regs *service.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, users); !ok {
			return
		}
		eventID, ok := pathID(c, "eventId")
		if !ok {
			return
		}
		attendees, err := regs.ListAttendees(c.Request.Context(), eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]userResponse, 0, len(attendees))
		for i := range attendees {
			u := toUserResponse(&attendees[i])
			u.Role = "" // Attendee listings carry contact details only
			resp = append(resp, u)
		}
		c.JSON(http.StatusOK, resp)
	}
}
