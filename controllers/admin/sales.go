package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// BookSalesEntry aggregates one book's paid sales for the dashboard.
type BookSalesEntry struct {
	Title         string  `json:"title"`
	Sales         int     `json:"sales"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"average_rating"`
}

// GetBookSales aggregates paid transactions per book. Pending and failed
// transactions never count as sales.
// GET /admin/sales
func GetBookSales(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transactions []models.Transaction
		if err := db.
			Where("status = ?", models.TransactionStatusPaid).
			Preload("Items").
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}

		var books []models.Book
		if err := db.Select("id", "title", "price", "average_rating").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		ratings := make(map[string]float64, len(books))
		titles := make(map[string]string, len(books))
		for _, book := range books {
			ratings[book.ID] = book.AverageRating
			titles[book.ID] = book.Title
		}

		salesData := make(map[string]*BookSalesEntry)
		var totalRevenue float64

		for _, transaction := range transactions {
			for _, item := range transaction.Items {
				entry, ok := salesData[item.BookID]
				if !ok {
					entry = &BookSalesEntry{
						Title:         titles[item.BookID],
						AverageRating: ratings[item.BookID],
					}
					salesData[item.BookID] = entry
				}
				entry.Sales++
				entry.Revenue += item.BookPrice
				totalRevenue += item.BookPrice
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"sales":         salesData,
			"total_revenue": totalRevenue,
		})
	}
}
