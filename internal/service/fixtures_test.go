package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventwave/internal/domain"
	"eventwave/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

// --- Mock Publisher ---

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// --- Fixture ---

type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher
	regs      *RegistrationService
	events    *EventService
	reviews   *ReviewService
	wishlist  *WishlistService
	organizer *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	f := &fixture{
		store:     store,
		publisher: pub,
		regs:      NewRegistrationService(store.Users(), store.Events(), store.Registrations(), pub),
		events:    NewEventService(store.Events(), pub),
		reviews:   NewReviewService(store.Events(), store.Registrations(), store.Reviews()),
		wishlist:  NewWishlistService(store.Events(), store.Wishlist()),
	}
	f.organizer = f.user(t, "olga", domain.RoleOrganizer)
	return f
}

func (f *fixture) user(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Username: name, Email: name + "@example.com", Password: "hash", Role: role}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) attendees(t *testing.T, n int) []*domain.User {
	t.Helper()
	out := make([]*domain.User, n)
	for i := range out {
		out[i] = f.user(t, fmt.Sprintf("attendee%d", i), domain.RoleAttendee)
	}
	return out
}

func (f *fixture) event(t *testing.T, capacity int, start time.Time) *domain.Event {
	t.Helper()
	e, err := f.events.Create(context.Background(), f.organizer.ID, EventInput{
		Title:     "Gophercon",
		StartTime: start,
		Location:  "Amsterdam",
		Capacity:  capacity,
		Price:     99.5,
		Category:  "technology",
	})
	require.NoError(t, err)
	return e
}
