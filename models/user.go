package models

import "time"

type User struct {
	ID             string        `gorm:"primaryKey" json:"id"`
	Email          string        `gorm:"unique;not null" json:"email"`
	Name           string        `json:"name"`
	Picture        string        `json:"picture"`
	Provider       string        `json:"provider"` // "google" or "email"
	IsAdmin        bool          `gorm:"default:false" json:"is_admin"`
	Cart           Cart          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	PurchasedBooks []Book        `gorm:"many2many:user_purchased_books" json:"purchased_books"`
	Ratings        []Rating      `gorm:"foreignKey:UserID" json:"ratings"`
	Transactions   []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"transactions"`
	CreatedAt      time.Time     `json:"created_at"`
}
