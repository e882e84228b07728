package api

import (
	"eventwave/internal/middleware" // Gate, policy, CORS and request ids
	"eventwave/internal/service"    // Business services
	"eventwave/internal/utils"      // Tokens and cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps is everything the HTTP layer needs
type Deps struct {
	Tokens         *utils.TokenService
	Credentials    *service.CredentialService
	Users          *service.UserService
	Events         *service.EventService
	Registrations  *service.RegistrationService
	Reviews        *service.ReviewService
	Wishlist       *service.WishlistService
	Cache          *utils.Cache // May wrap a nil client
	Policy         *middleware.Policy
	AllowedOrigins []string
}

// SetupRouter wires the request pipeline: request id, CORS, bearer gate, policy, handler.
// The stages are global so unknown routes are gated too.
func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default() // Gin router instance with logger and recovery

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.CORS(d.AllowedOrigins),
		middleware.BearerAuth(d.Tokens),
		middleware.Authorize(d.Policy),
	)

	// Health
	r.GET("/health", HealthHandler())

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/login", middleware.LoginGate(d.Credentials, d.Tokens)) // Login endpoint
	auth.POST("/register", RegisterHandler(d.Credentials, d.Tokens))   // Sign-up endpoint

	// Profile routes
	user := r.Group("/api/user")
	user.GET("/me", MeHandler(d.Users))
	user.PUT("/update", UpdateProfileHandler(d.Users, d.Tokens))

	// Organizer routes
	org := r.Group("/api/organizer/events")
	org.POST("", CreateEventHandler(d.Users, d.Events))
	org.GET("/my-events", MyEventsHandler(d.Users, d.Events))
	org.GET("/:eventId", GetOwnedEventHandler(d.Users, d.Events))
	org.PUT("/:eventId", UpdateEventHandler(d.Users, d.Events, d.Cache))
	org.DELETE("/:eventId", DeleteEventHandler(d.Users, d.Events, d.Cache))
	org.GET("/:eventId/reviews", OrganizerReviewsHandler(d.Users, d.Reviews))
	org.GET("/:eventId/reviews/summary", ReviewSummaryHandler(d.Users, d.Reviews, d.Cache))

	// Attendee browsing routes
	browse := BrowseDeps{Users: d.Users, Events: d.Events, Wishlist: d.Wishlist, Cache: d.Cache}
	events := r.Group("/api/attendee/events")
	events.GET("", ListEventsHandler(browse))
	events.GET("/my-registrations", MyRegistrationsHandler(d.Users, d.Registrations))
	events.GET("/search/title/:title", FilterEventsHandler(browse, ByTitle, false))
	events.GET("/search/description/:description", FilterEventsHandler(browse, ByDescription, false))
	events.GET("/filter/location/:location", FilterEventsHandler(browse, ByLocation, false))
	events.GET("/filter/date-range", FilterEventsHandler(browse, ByDateRange, false))
	events.GET("/by-category/:category", FilterEventsHandler(browse, ByCategory, true))
	events.GET("/:eventId", GetEventHandler(browse))
	events.POST("/:eventId/reviews", CreateReviewHandler(d.Users, d.Reviews, d.Cache))
	events.GET("/:eventId/reviews", EventReviewsHandler(d.Users, d.Reviews))

	// Registration routes
	regs := r.Group("/api/registrations")
	regs.POST("/register/:userId", RegisterForEventHandler(d.Users, d.Registrations))
	regs.POST("/unregister", UnregisterHandler(d.Users, d.Registrations))
	regs.GET("/attendees/:eventId", ListAttendeesHandler(d.Users, d.Registrations))
	regs.GET("/:registrationId", GetRegistrationHandler(d.Users, d.Registrations))

	// Wishlist routes
	wishlist := r.Group("/api/attendee/wishlist")
	wishlist.GET("", ListWishlistHandler(d.Users, d.Wishlist))
	wishlist.POST("/:eventId", AddToWishlistHandler(d.Users, d.Wishlist))
	wishlist.DELETE("/:eventId", RemoveFromWishlistHandler(d.Users, d.Wishlist))

	return r
}
