package models

import "time"

// Rating is one star rating per (user, book) pair. Submitting again
// overwrites the previous value.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_user_book" json:"user_id"`
	BookID    string    `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
