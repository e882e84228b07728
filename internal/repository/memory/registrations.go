package memory

import (
	"context"
	"sort"

	"eventwave/internal/domain"
	"eventwave/internal/repository"
)

type registrationRepo struct{ s *Store }

// Reserve holds the event's mutex across the duplicate check, the count and the insert.
// s.mu is only taken for the short map reads and the final write.
func (r *registrationRepo) Reserve(_ context.Context, userID, eventID uint) (*domain.Registration, repository.ReserveOutcome, error) {
	lock := r.s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	r.s.mu.RLock()
	event, ok := r.s.events[eventID]
	var taken int
	duplicate := false
	for _, reg := range r.s.registrations {
		if reg.EventID != eventID {
			continue
		}
		if reg.UserID == userID {
			duplicate = true
		}
		if reg.Status == domain.RegistrationConfirmed {
			taken++
		}
	}
	r.s.mu.RUnlock()

	switch {
	case !ok:
		return nil, repository.ReserveFull, domain.ErrEventNotFound
	case duplicate:
		return nil, repository.ReserveDuplicate, nil
	case taken >= event.Capacity:
		return nil, repository.ReserveFull, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg := domain.Registration{
		ID:        r.s.id("registrations"),
		UserID:    userID,
		EventID:   eventID,
		Status:    domain.RegistrationConfirmed,
		CreatedAt: r.s.now(),
	}
	r.s.registrations[reg.ID] = reg
	return &reg, repository.ReserveConfirmed, nil
}

func (r *registrationRepo) FindByID(_ context.Context, id uint) (*domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return &reg, nil
}

func (r *registrationRepo) FindByUserAndEvent(_ context.Context, userID, eventID uint) (*domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, reg := range r.s.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			return &reg, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *registrationRepo) DeleteByUserAndEvent(_ context.Context, userID, eventID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, reg := range r.s.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			delete(r.s.registrations, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *registrationRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Registration{}
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID {
			reg.User = r.s.userRef(reg.UserID)
			out = append(out, reg)
		}
	}
	sortRegistrations(out)
	return out, nil
}

func (r *registrationRepo) ListByUser(_ context.Context, userID uint) ([]domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Registration{}
	for _, reg := range r.s.registrations {
		if reg.UserID == userID {
			reg.Event = r.s.eventRef(reg.EventID)
			out = append(out, reg)
		}
	}
	sortRegistrations(out)
	return out, nil
}

func (r *registrationRepo) CountConfirmed(_ context.Context, eventID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID && reg.Status == domain.RegistrationConfirmed {
			n++
		}
	}
	return n, nil
}

func sortRegistrations(regs []domain.Registration) {
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
}
