// Package repository holds the persistence contracts and their gorm implementations.
package repository

import (
	"context"
	"time"

	"eventwave/internal/domain"
)

// ReserveOutcome is the decision taken by an atomic reservation attempt
type ReserveOutcome int

const (
	ReserveConfirmed ReserveOutcome = iota // A new confirmed registration was stored
	ReserveDuplicate                       // The user already holds a registration for the event
	ReserveFull                            // Confirmed registrations already reached capacity
)

func (o ReserveOutcome) String() string {
	switch o {
	case ReserveConfirmed:
		return "confirmed"
	case ReserveDuplicate:
		return "duplicate"
	case ReserveFull:
		return "full"
	}
	return "unknown"
}

// Page bounds a listing. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

// EventFilter holds simple predicates; zero values match everything
type EventFilter struct {
	OrganizerID         *uint
	TitleContains       string
	DescriptionContains string
	LocationContains    string
	StartsAfter         *time.Time
	StartsBefore        *time.Time
	Category            domain.Category
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uint) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	// Delete removes the event together with its registrations, reviews and wishlist entries.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter EventFilter, page Page) ([]domain.Event, int64, error)
}

type RegistrationRepository interface {
	// Reserve checks uniqueness and capacity and inserts a confirmed registration as one atomic step per event.
	Reserve(ctx context.Context, userID, eventID uint) (*domain.Registration, ReserveOutcome, error)
	FindByID(ctx context.Context, id uint) (*domain.Registration, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*domain.Registration, error)
	// DeleteByUserAndEvent reports false when no registration matched.
	DeleteByUserAndEvent(ctx context.Context, userID, eventID uint) (bool, error)
	// ListByEvent returns registrations with User populated.
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	// ListByUser returns registrations with Event populated.
	ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	// ListByEvent returns reviews with User populated, oldest first.
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Review, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type WishlistRepository interface {
	// Add reports false when the entry was already present.
	Add(ctx context.Context, entry *domain.WishlistEntry) (bool, error)
	// Remove reports false when there was nothing to remove.
	Remove(ctx context.Context, userID, eventID uint) (bool, error)
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	// ListByUser returns entries with Event populated, newest first.
	ListByUser(ctx context.Context, userID uint) ([]domain.WishlistEntry, error)
}
