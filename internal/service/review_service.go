package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventwave/internal/domain"
	"eventwave/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReviewView is a review as listed to clients
type ReviewView struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Username  string    `json:"username"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	reviews       repository.ReviewRepository
	now           func() time.Time
}

func NewReviewService(
	events repository.EventRepository,
	registrations repository.RegistrationRepository,
	reviews repository.ReviewRepository,
) *ReviewService {
	return &ReviewService{events: events, registrations: registrations, reviews: reviews, now: time.Now}
}

// WithClock returns a copy of the service that reads time from now
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	cp := *s
	cp.now = now
	return &cp
}

// Create stores a review for an event that has started and that the user attended
func (s *ReviewService) Create(ctx context.Context, userID, eventID uint, feedback string) (*domain.Review, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// Checked first: a future event cannot be reviewed whatever the registration state
	if !event.HasStarted(s.now()) {
		return nil, domain.NewValidationError("Cannot review an event that has not started yet")
	}

	reg, err := s.registrations.FindByUserAndEvent(ctx, userID, eventID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && reg.Status != domain.RegistrationConfirmed) {
		return nil, domain.NewValidationError("You can only review events you attended")
	}
	if err != nil {
		return nil, err
	}

	reviewed, err := s.reviews.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, domain.NewValidationError("You've already reviewed this event")
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, domain.NewValidationError("Feedback is required")
	}

	review := &domain.Review{UserID: userID, EventID: eventID, Feedback: feedback}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "event_id": eventID, "review_id": review.ID}).Info("review created")
	return review, nil
}

// ListForEvent lists an event's reviews; feedback text is included only when showFeedback is set
func (s *ReviewService) ListForEvent(ctx context.Context, eventID uint, showFeedback bool) ([]ReviewView, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		v := ReviewView{ID: r.ID, EventID: r.EventID, CreatedAt: r.CreatedAt}
		if r.User != nil {
			v.Username = r.User.Username
		}
		if showFeedback {
			v.Feedback = r.Feedback
		}
		views = append(views, v)
	}
	return views, nil
}

// ListForOrganizer lists reviews with feedback, only for the event's organizer
func (s *ReviewService) ListForOrganizer(ctx context.Context, organizerID, eventID uint) ([]ReviewView, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return s.ListForEvent(ctx, eventID, true)
}

// Summary counts reviews. Reviews carry no rating, so the average stays zero.
func (s *ReviewService) Summary(ctx context.Context, eventID uint) (*domain.ReviewSummary, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	total, err := s.reviews.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.ReviewSummary{EventID: eventID, AverageRating: 0, TotalReviews: total}, nil
}
