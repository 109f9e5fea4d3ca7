package bookControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// UpdateBook replaces a book's editable fields.
// PUT /admin/books/:id
func UpdateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Book ID is required"})
			return
		}

		var book models.Book
		if err := db.First(&book, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
			}
			return
		}

		var input BookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		book.Title = input.Title
		book.Description = input.Description
		book.Thumbnail = input.Thumbnail
		book.Genre = input.Genre
		book.Tags = input.Tags
		book.Publisher = input.Publisher
		book.Authors = input.Authors
		book.Price = input.Price
		book.ObjectKey = input.ObjectKey

		if err := db.Save(&book).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
			return
		}

		c.JSON(http.StatusOK, book)
	}
}
