package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies an event
type Category string

const (
	CategoryTechnology Category = "TECHNOLOGY"
	CategoryMusic      Category = "MUSIC"
	CategorySports     Category = "SPORTS"
	CategoryArts       Category = "ARTS"
	CategoryBusiness   Category = "BUSINESS"
	CategoryCommunity  Category = "COMMUNITY"
)

// ParseCategory accepts "technology", "Technology" or "TECHNOLOGY"; spaces become underscores
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	switch c {
	case CategoryTechnology, CategoryMusic, CategorySports, CategoryArts, CategoryBusiness, CategoryCommunity:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                            // Primary key
	Title       string    `gorm:"size:255;not null" json:"title"`                  // Event title
	Description string    `gorm:"type:text" json:"description"`                    // Free text description
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`                // When the event starts
	Location    string    `gorm:"size:255;not null" json:"location"`               // Venue
	Capacity    int       `gorm:"not null" json:"capacity"`                        // Maximum confirmed registrations
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`        // Ticket price
	OrganizerID uint      `gorm:"not null;index" json:"organizer_id"`              // Owning organizer, immutable
	Organizer   *User     `gorm:"foreignKey:OrganizerID" json:"-"`                 // Owning organizer record
	Category    Category  `gorm:"type:varchar(32);not null;index" json:"category"` // Event category
	ImageURL    string    `gorm:"size:512" json:"image_url"`                       // Image reference
	CreatedAt   time.Time `json:"created_at"`                                      // Creation timestamp
	UpdatedAt   time.Time `json:"updated_at"`                                      // Last update timestamp
}

// HasStarted reports whether the event start time is at or before now
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartTime.After(now)
}
