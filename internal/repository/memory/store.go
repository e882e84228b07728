// Package memory is a single-process implementation of the repository contracts.
// It backs DB_DRIVER=memory and the service and HTTP tests.
package memory

import (
	"sync"
	"time"

	"eventwave/internal/domain"
	"eventwave/internal/repository"
)

// Store keeps every table in maps guarded by one RWMutex.
// Reservations additionally hold a per-event mutex across count, compare and insert.
type Store struct {
	mu sync.RWMutex

	users         map[uint]domain.User
	events        map[uint]domain.Event
	registrations map[uint]domain.Registration
	reviews       map[uint]domain.Review
	wishlist      map[uint]domain.WishlistEntry
	nextID        map[string]uint

	locksMu    sync.Mutex
	eventLocks map[uint]*sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uint]domain.User),
		events:        make(map[uint]domain.Event),
		registrations: make(map[uint]domain.Registration),
		reviews:       make(map[uint]domain.Review),
		wishlist:      make(map[uint]domain.WishlistEntry),
		nextID:        make(map[string]uint),
		eventLocks:    make(map[uint]*sync.Mutex),
		now:           time.Now,
	}
}

func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

func (s *Store) Events() repository.EventRepository { return &eventRepo{s} }

func (s *Store) Registrations() repository.RegistrationRepository { return &registrationRepo{s} }

func (s *Store) Reviews() repository.ReviewRepository { return &reviewRepo{s} }

func (s *Store) Wishlist() repository.WishlistRepository { return &wishlistRepo{s} }

// id hands out the next identifier for a table; callers hold s.mu
func (s *Store) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

// eventLock returns the mutex serializing reservations for one event
func (s *Store) eventLock(eventID uint) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.eventLocks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.eventLocks[eventID] = l
	}
	return l
}

// userRef and eventRef return detached copies so callers cannot mutate stored rows
func (s *Store) userRef(id uint) *domain.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (s *Store) eventRef(id uint) *domain.Event {
	e, ok := s.events[id]
	if !ok {
		return nil
	}
	return &e
}
