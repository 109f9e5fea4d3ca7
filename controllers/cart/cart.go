package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

type AddToCartInput struct {
	BookID string `json:"book_id" binding:"required"`
}

// AddToCart appends a book to the caller's cart. Each book may appear at
// most once; adding it again is rejected.
// POST /user/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Fetch book from DB
		var book models.Book
		if err := db.First(&book, "id = ?", input.BookID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate book"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Book does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		// Check if user has a cart
		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
			return
		}

		// Reject duplicates
		var existing models.CartItem
		err := db.Where("cart_id = ? AND book_id = ?", cart.CartID, input.BookID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Book is already in the cart"})
			return
		}
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		item := models.CartItem{
			CartID:        cart.CartID,
			BookID:        book.ID,
			BookTitle:     book.Title,
			BookThumbnail: book.Thumbnail,
			BookPrice:     book.Price,
			AddedAt:       time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book to cart"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// RemoveFromCart takes a book out of the caller's cart. Removing a book
// that is not in the cart is a no-op.
// DELETE /user/cart/:book_id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		bookID := c.Param("book_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		if err := db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove book from cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Book removed from cart"})
	}
}

// ClearCart empties the caller's cart.
// DELETE /user/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GetCart returns the caller's cart items and their total.
// GET /user/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var total float64
		for _, item := range cart.Items {
			total += item.BookPrice
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       cart.Items,
			"total_price": total,
		})
	}
}
