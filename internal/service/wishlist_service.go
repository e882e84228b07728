package service

import (
	"context"
	"time"

	"eventwave/internal/domain"
	"eventwave/internal/repository"

	"github.com/sirupsen/logrus"
)

// WishlistItem is one wishlist row as shown to its owner
type WishlistItem struct {
	EventID       uint      `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`
	AddedAt       time.Time `json:"added_at"`
}

type WishlistService struct {
	events   repository.EventRepository
	wishlist repository.WishlistRepository
}

func NewWishlistService(events repository.EventRepository, wishlist repository.WishlistRepository) *WishlistService {
	return &WishlistService{events: events, wishlist: wishlist}
}

// Add reports false when the event was already on the list
func (s *WishlistService) Add(ctx context.Context, userID, eventID uint) (bool, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return false, err
	}
	added, err := s.wishlist.Add(ctx, &domain.WishlistEntry{UserID: userID, EventID: eventID})
	if err != nil {
		return false, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "event_id": eventID, "added": added}).Info("wishlist add")
	return added, nil
}

// Remove fails with ErrWishlistEntryNotFound when there is nothing to remove
func (s *WishlistService) Remove(ctx context.Context, userID, eventID uint) error {
	removed, err := s.wishlist.Remove(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrWishlistEntryNotFound
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID uint) ([]WishlistItem, error) {
	entries, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]WishlistItem, 0, len(entries))
	for _, e := range entries {
		item := WishlistItem{EventID: e.EventID, AddedAt: e.CreatedAt}
		if e.Event != nil {
			item.EventTitle = e.Event.Title
			item.EventDate = e.Event.StartTime
			item.EventLocation = e.Event.Location
		}
		items = append(items, item)
	}
	return items, nil
}

// EventIDs returns the set of events on the user's list
func (s *WishlistService) EventIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	entries, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(entries))
	for _, e := range entries {
		ids[e.EventID] = true
	}
	return ids, nil
}
