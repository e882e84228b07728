package repository

import (
	"context"
	"strings"

	"eventwave/internal/domain"

	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, notFound(err, domain.ErrEventNotFound)
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	// MySQL reports zero affected rows for unchanged values, so existence is the caller's check
	return r.db.WithContext(ctx).Model(event).
		Select("title", "description", "start_time", "location", "capacity", "price", "category", "image_url", "updated_at").
		Updates(event).Error
}

// Delete removes dependents explicitly so the behaviour does not rely on FK support
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []any{&domain.Registration{}, &domain.Review{}, &domain.WishlistEntry{}} {
			if err := tx.Where("event_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEventNotFound
		}
		return nil
	})
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter, page Page) ([]domain.Event, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{})
	if filter.OrganizerID != nil {
		q = q.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.TitleContains != "" {
		q = q.Where("LOWER(title) LIKE ?", likePattern(filter.TitleContains))
	}
	if filter.DescriptionContains != "" {
		q = q.Where("LOWER(description) LIKE ?", likePattern(filter.DescriptionContains))
	}
	if filter.LocationContains != "" {
		q = q.Where("LOWER(location) LIKE ?", likePattern(filter.LocationContains))
	}
	if filter.StartsAfter != nil {
		q = q.Where("start_time >= ?", *filter.StartsAfter)
	}
	if filter.StartsBefore != nil {
		q = q.Where("start_time <= ?", *filter.StartsBefore)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []domain.Event
	q = q.Order("start_time ASC, id ASC").Offset(page.Offset)
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// likePattern lowercases the needle and escapes LIKE wildcards
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
