package domain

import "time"

// Review Model
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_event" json:"user_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_review_user_event;index" json:"event_id"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReviewSummary aggregates the reviews of one event.
// AverageRating stays zero: reviews carry no numeric rating.
type ReviewSummary struct {
	EventID       uint    `json:"event_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}
