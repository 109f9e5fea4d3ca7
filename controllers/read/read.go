package readControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
	"github.com/vampconnoisseur/fabels/storage"
)

// ReadBook issues a short-lived signed download URL for a purchased book.
// Access is purely membership in the caller's purchased set; non-buyers
// get no URL.
// GET /user/read/:book_id
func ReadBook(db *gorm.DB, presigner *storage.Presigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		bookID := c.Param("book_id")

		var owned int64
		if err := db.Table("user_purchased_books").
			Where("user_id = ? AND book_id = ?", userID, bookID).
			Count(&owned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check purchase"})
			return
		}
		if owned == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this book"})
			return
		}

		var book models.Book
		if err := db.First(&book, "id = ?", bookID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}

		url, err := presigner.SignedBookURL(c.Request.Context(), book.ObjectKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download link"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
