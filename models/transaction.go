package models

import "time"

type TransactionStatus string

const (
	// A transaction is created pending when the hosted checkout session is
	// opened and only becomes paid once the payment provider confirms it
	// via webhook. Entitlements are granted on the pending -> paid edge.
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPaid    TransactionStatus = "paid"
	TransactionStatusFailed  TransactionStatus = "failed"
)

type Transaction struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Ref       string            `gorm:"uniqueIndex" json:"ref"`
	UserID    string            `gorm:"not null;index" json:"user_id"`
	User      User              `gorm:"foreignKey:UserID" json:"user"`
	Items     []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
	Price     float64           `json:"price"`
	Status    TransactionStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	SessionID string            `gorm:"index" json:"session_id"` // hosted checkout session id
	CreatedAt time.Time         `json:"created_at"`
}

// TransactionItem is an immutable snapshot of a purchased book.
type TransactionItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID uint    `gorm:"index" json:"transaction_id"`
	BookID        string  `json:"book_id"`
	BookTitle     string  `json:"book_title"`
	BookPrice     float64 `json:"book_price"`
}
