package models

import "time"

type Book struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	Thumbnail     string    `json:"thumbnail"`
	Genre         string    `json:"genre"`
	Tags          []string  `gorm:"serializer:json" json:"tags"`
	Publisher     string    `json:"publisher"`
	Authors       []string  `gorm:"serializer:json" json:"authors"`
	Price         float64   `gorm:"not null" json:"price"`
	ObjectKey     string    `gorm:"not null" json:"-"` // S3 key of the e-book file, never exposed
	Sales         int       `gorm:"default:0" json:"sales"`
	AverageRating float64   `json:"average_rating"`
	ReleaseDate   time.Time `json:"release_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
