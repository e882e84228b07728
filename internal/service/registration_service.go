package service

import (
	"context"
	"errors"
	"time"

	"eventwave/internal/broker"
	"eventwave/internal/domain"
	"eventwave/internal/repository"

	"github.com/sirupsen/logrus"
)

// RegistrationOutcome is the result of a register call. None of them is an error.
type RegistrationOutcome string

const (
	OutcomeConfirmed         RegistrationOutcome = "CONFIRMED"
	OutcomeAlreadyRegistered RegistrationOutcome = "ALREADY_REGISTERED"
	OutcomeFull              RegistrationOutcome = "FULL"
)

// RegistrationResult is what Register reports back to the handler
type RegistrationResult struct {
	Outcome      RegistrationOutcome
	Registration *domain.Registration // Set for CONFIRMED and ALREADY_REGISTERED
	User         *domain.User
	Event        *domain.Event
}

// registrationMessage is published on registration.confirmed and registration.cancelled
type registrationMessage struct {
	RegistrationID uint `json:"registration_id,omitempty"`
	UserID         uint `json:"user_id"`
	EventID        uint `json:"event_id"`
}

const defaultReserveTimeout = 10 * time.Second

// RegistrationService enforces per-event capacity and per-(user, event) uniqueness.
// Caller identity checks belong to the handlers.
type RegistrationService struct {
	users          repository.UserRepository
	events         repository.EventRepository
	registrations  repository.RegistrationRepository
	publisher      Publisher
	reserveTimeout time.Duration
}

func NewRegistrationService(
	users repository.UserRepository,
	events repository.EventRepository,
	registrations repository.RegistrationRepository,
	publisher Publisher,
) *RegistrationService {
	return &RegistrationService{
		users:          users,
		events:         events,
		registrations:  registrations,
		publisher:      publisher,
		reserveTimeout: defaultReserveTimeout,
	}
}

func (s *RegistrationService) Register(ctx context.Context, userID, eventID uint) (*RegistrationResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	result := &RegistrationResult{User: user, Event: event}

	// Fast path for repeat calls; Reserve re-checks under the event lock
	existing, err := s.registrations.FindByUserAndEvent(ctx, userID, eventID)
	if err == nil {
		result.Outcome = OutcomeAlreadyRegistered
		result.Registration = existing
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// A client disconnect must not cut the reservation short
	reserveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.reserveTimeout)
	defer cancel()
	reg, outcome, err := s.registrations.Reserve(reserveCtx, userID, eventID)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"user_id": userID, "event_id": eventID, "outcome": outcome.String()}
	switch outcome {
	case repository.ReserveConfirmed:
		result.Outcome = OutcomeConfirmed
		result.Registration = reg
		logrus.WithFields(fields).Info("registration confirmed")
		publish(ctx, s.publisher, broker.RegistrationConfirmed, registrationMessage{
			RegistrationID: reg.ID, UserID: userID, EventID: eventID,
		})
	case repository.ReserveDuplicate:
		existing, err := s.registrations.FindByUserAndEvent(reserveCtx, userID, eventID)
		if err != nil {
			return nil, err
		}
		result.Outcome = OutcomeAlreadyRegistered
		result.Registration = existing
		logrus.WithFields(fields).Info("registration already present")
	default:
		result.Outcome = OutcomeFull
		logrus.WithFields(fields).Info("registration rejected, event full")
	}
	return result, nil
}

// Unregister deletes the caller's own registration and frees its seat
func (s *RegistrationService) Unregister(ctx context.Context, userID, eventID uint) error {
	// Same bound as Register; the delete survives a client disconnect
	deleteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.reserveTimeout)
	defer cancel()
	deleted, err := s.registrations.DeleteByUserAndEvent(deleteCtx, userID, eventID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrRegistrationNotFound
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "event_id": eventID}).Info("registration cancelled")
	publish(ctx, s.publisher, broker.RegistrationCancelled, registrationMessage{UserID: userID, EventID: eventID})
	return nil
}

func (s *RegistrationService) Get(ctx context.Context, registrationID uint) (*domain.Registration, error) {
	return s.registrations.FindByID(ctx, registrationID)
}

// ListAttendees returns the users registered for an event
func (s *RegistrationService) ListAttendees(ctx context.Context, eventID uint) ([]domain.User, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(regs))
	for _, r := range regs {
		if r.User != nil {
			users = append(users, *r.User)
		}
	}
	return users, nil
}

// ListForUser returns the user's registrations with their events
func (s *RegistrationService) ListForUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	return s.registrations.ListByUser(ctx, userID)
}
