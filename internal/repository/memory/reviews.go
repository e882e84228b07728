package memory

import (
	"context"
	"sort"

	"eventwave/internal/domain"
)

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.UserID == review.UserID && existing.EventID == review.EventID {
			return domain.NewValidationError("You've already reviewed this event")
		}
	}
	review.ID = r.s.id("reviews")
	review.CreatedAt = r.s.now()
	stored := *review
	stored.User, stored.Event = nil, nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *reviewRepo) Exists(_ context.Context, userID, eventID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.UserID == userID && rv.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *reviewRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Review{}
	for _, rv := range r.s.reviews {
		if rv.EventID == eventID {
			rv.User = r.s.userRef(rv.UserID)
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *reviewRepo) CountByEvent(_ context.Context, eventID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, rv := range r.s.reviews {
		if rv.EventID == eventID {
			n++
		}
	}
	return n, nil
}
