package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`  // Unique username
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`    // Unique email
	Password  string    `gorm:"not null" json:"-"`                             // bcrypt hash, never serialized
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`         // ATTENDEE or ORGANIZER
	CreatedAt time.Time `json:"created_at"`                                    // Creation timestamp
	UpdatedAt time.Time `json:"-"`                                             // Last profile update
}
