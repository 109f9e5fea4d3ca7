package bookControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

type BookInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Thumbnail   string   `json:"thumbnail" binding:"required"`
	Genre       string   `json:"genre" binding:"required"`
	Tags        []string `json:"tags" binding:"required,min=1"`
	Publisher   string   `json:"publisher" binding:"required"`
	Authors     []string `json:"authors" binding:"required,min=1"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	ObjectKey   string   `json:"object_key" binding:"required"`
}

// CreateBook adds a book to the catalog.
// POST /admin/books
func CreateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		book := models.Book{
			ID:          uuid.NewString(),
			Title:       input.Title,
			Description: input.Description,
			Thumbnail:   input.Thumbnail,
			Genre:       input.Genre,
			Tags:        input.Tags,
			Publisher:   input.Publisher,
			Authors:     input.Authors,
			Price:       input.Price,
			ObjectKey:   input.ObjectKey,
			ReleaseDate: time.Now(),
		}

		if err := db.Create(&book).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book"})
			return
		}

		c.JSON(http.StatusCreated, book)
	}
}
