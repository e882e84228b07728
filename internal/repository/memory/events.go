package memory

import (
	"context"
	"sort"
	"strings"

	"eventwave/internal/domain"
	"eventwave/internal/repository"
)

type eventRepo struct{ s *Store }

func (r *eventRepo) Create(_ context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	event.ID = r.s.id("events")
	event.CreatedAt, event.UpdatedAt = now, now
	stored := *event
	stored.Organizer = nil
	r.s.events[event.ID] = stored
	return nil
}

func (r *eventRepo) FindByID(_ context.Context, id uint) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if e := r.s.eventRef(id); e != nil {
		return e, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *eventRepo) Update(_ context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	stored.Title = event.Title
	stored.Description = event.Description
	stored.StartTime = event.StartTime
	stored.Location = event.Location
	stored.Capacity = event.Capacity
	stored.Price = event.Price
	stored.Category = event.Category
	stored.ImageURL = event.ImageURL
	stored.UpdatedAt = r.s.now()
	r.s.events[event.ID] = stored
	event.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *eventRepo) Delete(_ context.Context, id uint) error {
	// Taking the event lock first keeps a concurrent reservation from landing on a deleted event
	lock := r.s.eventLock(id)
	lock.Lock()
	defer lock.Unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.s.events, id)
	for k, v := range r.s.registrations {
		if v.EventID == id {
			delete(r.s.registrations, k)
		}
	}
	for k, v := range r.s.reviews {
		if v.EventID == id {
			delete(r.s.reviews, k)
		}
	}
	for k, v := range r.s.wishlist {
		if v.EventID == id {
			delete(r.s.wishlist, k)
		}
	}
	return nil
}

func (r *eventRepo) List(_ context.Context, f repository.EventFilter, page repository.Page) ([]domain.Event, int64, error) {
	r.s.mu.RLock()
	matched := make([]domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		if matches(e, f) {
			matched = append(matched, e)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].StartTime.Before(matched[j].StartTime)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	page.Offset = max(page.Offset, 0)
	if page.Offset >= len(matched) {
		return []domain.Event{}, total, nil
	}
	matched = matched[page.Offset:]
	if page.Limit > 0 && page.Limit < len(matched) {
		matched = matched[:page.Limit]
	}
	return matched, total, nil
}

func matches(e domain.Event, f repository.EventFilter) bool {
	if f.OrganizerID != nil && e.OrganizerID != *f.OrganizerID {
		return false
	}
	if !containsFold(e.Title, f.TitleContains) ||
		!containsFold(e.Description, f.DescriptionContains) ||
		!containsFold(e.Location, f.LocationContains) {
		return false
	}
	if f.StartsAfter != nil && e.StartTime.Before(*f.StartsAfter) {
		return false
	}
	if f.StartsBefore != nil && e.StartTime.After(*f.StartsBefore) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
