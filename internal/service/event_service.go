package service

import (
	"context"
	"strings"
	"time"

	"eventwave/internal/broker"
	"eventwave/internal/domain"
	"eventwave/internal/repository"

	"github.com/sirupsen/logrus"
)

// EventInput is the writable part of an event
type EventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	Location    string
	Capacity    int
	Price       float64
	Category    string
	ImageURL    string
}

type EventService struct {
	events    repository.EventRepository
	publisher Publisher
}

func NewEventService(events repository.EventRepository, publisher Publisher) *EventService {
	return &EventService{events: events, publisher: publisher}
}

func (s *EventService) Create(ctx context.Context, organizerID uint, in EventInput) (*domain.Event, error) {
	event := &domain.Event{OrganizerID: organizerID}
	if err := applyInput(event, in); err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"event_id": event.ID, "organizer_id": organizerID}).Info("event created")
	publish(ctx, s.publisher, broker.EventCreated, event)
	return event, nil
}

func (s *EventService) Get(ctx context.Context, eventID uint) (*domain.Event, error) {
	return s.events.FindByID(ctx, eventID)
}

// GetOwned returns the event only to its organizer
func (s *EventService) GetOwned(ctx context.Context, organizerID, eventID uint) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// Update replaces the writable fields. Lowering capacity below the confirmed count
// is allowed; it only stops new registrations.
func (s *EventService) Update(ctx context.Context, organizerID, eventID uint, in EventInput) (*domain.Event, error) {
	event, err := s.GetOwned(ctx, organizerID, eventID)
	if err != nil {
		return nil, err
	}
	if err := applyInput(event, in); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"event_id": event.ID, "organizer_id": organizerID}).Info("event updated")
	publish(ctx, s.publisher, broker.EventUpdated, event)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, organizerID, eventID uint) error {
	if _, err := s.GetOwned(ctx, organizerID, eventID); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"event_id": eventID, "organizer_id": organizerID}).Info("event deleted")
	publish(ctx, s.publisher, broker.EventDeleted, map[string]uint{"id": eventID})
	return nil
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	events, _, err := s.events.List(ctx, repository.EventFilter{OrganizerID: &organizerID}, repository.Page{})
	return events, err
}

func (s *EventService) List(ctx context.Context, filter repository.EventFilter, page repository.Page) ([]domain.Event, int64, error) {
	return s.events.List(ctx, filter, page)
}

func applyInput(event *domain.Event, in EventInput) error {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	switch {
	case title == "":
		return domain.NewValidationError("Title is required")
	case location == "":
		return domain.NewValidationError("Location is required")
	case in.StartTime.IsZero():
		return domain.NewValidationError("Start time is required")
	case in.Capacity <= 0:
		return domain.NewValidationError("Capacity must be greater than zero")
	case in.Price < 0:
		return domain.NewValidationError("Price cannot be negative")
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return domain.NewValidationError("Unknown category %q", in.Category)
	}

	event.Title = title
	event.Description = strings.TrimSpace(in.Description)
	event.StartTime = in.StartTime.UTC()
	event.Location = location
	event.Capacity = in.Capacity
	event.Price = in.Price
	event.Category = category
	event.ImageURL = strings.TrimSpace(in.ImageURL)
	return nil
}
