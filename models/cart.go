package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots the book at add time. One row per (cart, book);
// the add handler rejects duplicates.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CartID        uint      `gorm:"index" json:"cart_id"`
	BookID        string    `gorm:"index" json:"book_id"`
	BookTitle     string    `json:"book_title"`
	BookThumbnail string    `json:"book_thumbnail"`
	BookPrice     float64   `json:"book_price"`
	AddedAt       time.Time `json:"added_at"`
}
