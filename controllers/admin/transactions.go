package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// GetAllTransactions lists every transaction with its user and item
// snapshots, newest first.
// GET /admin/transactions
func GetAllTransactions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transactions []models.Transaction
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}

		c.JSON(http.StatusOK, transactions)
	}
}
