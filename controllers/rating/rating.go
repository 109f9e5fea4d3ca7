package ratingControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

type RatingInput struct {
	BookID string `json:"book_id" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

// SubmitRating upserts the caller's rating for a purchased book and
// recomputes the book's average as the unweighted mean over all ratings.
// POST /user/ratings
func SubmitRating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input RatingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Only buyers may rate
		var owned int64
		if err := db.Table("user_purchased_books").
			Where("user_id = ? AND book_id = ?", userID, input.BookID).
			Count(&owned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check purchase"})
			return
		}
		if owned == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "You have not purchased this book"})
			return
		}

		// Upsert on the (user, book) pair
		var rating models.Rating
		err := db.Where("user_id = ? AND book_id = ?", userID, input.BookID).First(&rating).Error
		if err == gorm.ErrRecordNotFound {
			rating = models.Rating{
				UserID: userID,
				BookID: input.BookID,
				Rating: input.Rating,
			}
			if err := db.Create(&rating).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
				return
			}
		} else if err == nil {
			rating.Rating = input.Rating
			rating.UpdatedAt = time.Now()
			if err := db.Save(&rating).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rating"})
				return
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rating"})
			return
		}

		// Recompute the book's average
		var average float64
		if err := db.Model(&models.Rating{}).
			Where("book_id = ?", input.BookID).
			Select("AVG(rating)").
			Scan(&average).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute average rating"})
			return
		}

		if err := db.Model(&models.Book{}).Where("id = ?", input.BookID).
			Update("average_rating", average).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book rating"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"rating":         rating,
			"average_rating": average,
		})
	}
}
