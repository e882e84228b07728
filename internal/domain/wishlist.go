package domain

import "time"

// WishlistEntry Model
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_event" json:"user_id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_event;index" json:"event_id"`
	CreatedAt time.Time `json:"added_at"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name short
func (WishlistEntry) TableName() string {
	return "wishlists"
}
