package domain

import "time"

// RegistrationStatus is the state of a registration. Only CONFIRMED is produced today.
type RegistrationStatus string

const RegistrationConfirmed RegistrationStatus = "CONFIRMED"

// Registration Model
// At most one row exists per (user, event); confirmed rows per event never exceed the event capacity.
type Registration struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;uniqueIndex:idx_registration_user_event" json:"user_id"`
	EventID   uint               `gorm:"not null;uniqueIndex:idx_registration_user_event;index" json:"event_id"`
	Status    RegistrationStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}
