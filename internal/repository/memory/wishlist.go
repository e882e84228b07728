package memory

import (
	"context"
	"sort"

	"eventwave/internal/domain"
)

type wishlistRepo struct{ s *Store }

func (r *wishlistRepo) Add(_ context.Context, entry *domain.WishlistEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.wishlist {
		if e.UserID == entry.UserID && e.EventID == entry.EventID {
			return false, nil
		}
	}
	entry.ID = r.s.id("wishlist")
	entry.CreatedAt = r.s.now()
	stored := *entry
	stored.User, stored.Event = nil, nil
	r.s.wishlist[entry.ID] = stored
	return true, nil
}

func (r *wishlistRepo) Remove(_ context.Context, userID, eventID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.wishlist {
		if e.UserID == userID && e.EventID == eventID {
			delete(r.s.wishlist, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *wishlistRepo) Exists(_ context.Context, userID, eventID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.wishlist {
		if e.UserID == userID && e.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *wishlistRepo) ListByUser(_ context.Context, userID uint) ([]domain.WishlistEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.WishlistEntry{}
	for _, e := range r.s.wishlist {
		if e.UserID == userID {
			e.Event = r.s.eventRef(e.EventID)
			out = append(out, e)
		}
	}
	// Newest first; IDs grow with time
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
