package models

import "time"

// LoginToken backs magic-link sign-in. The token is emailed to the user
// and consumed (deleted) on verification.
type LoginToken struct {
	Token     string    `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"index;not null" json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
