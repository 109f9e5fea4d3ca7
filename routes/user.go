package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/vampconnoisseur/fabels/controllers/cart"
	checkoutControllers "github.com/vampconnoisseur/fabels/controllers/checkout"
	ratingControllers "github.com/vampconnoisseur/fabels/controllers/rating"
	readControllers "github.com/vampconnoisseur/fabels/controllers/read"
	userControllers "github.com/vampconnoisseur/fabels/controllers/user"
	"github.com/vampconnoisseur/fabels/middleware"
	"github.com/vampconnoisseur/fabels/payments"
	"github.com/vampconnoisseur/fabels/storage"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, provider payments.CheckoutProvider, presigner *storage.Presigner) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile & History ────────────────
		userGroup.GET("/", userControllers.GetUser(db))                          // GET /user/
		userGroup.GET("/purchased-books", userControllers.GetPurchasedBooks(db)) // GET /user/purchased-books
		userGroup.GET("/transactions", userControllers.GetUserTransactions(db))  // GET /user/transactions

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(db))                   // GET /user/cart
			cartGroup.POST("/", cartControllers.AddToCart(db))                // POST /user/cart
			cartGroup.DELETE("/:book_id", cartControllers.RemoveFromCart(db)) // DELETE /user/cart/:book_id
			cartGroup.DELETE("/", cartControllers.ClearCart(db))              // DELETE /user/cart
		}

		// ──────────────── Checkout ────────────────
		userGroup.POST("/checkout", checkoutControllers.CheckoutHandler(db, provider)) // POST /user/checkout

		// ──────────────── Reading & Ratings ────────────────
		userGroup.GET("/read/:book_id", readControllers.ReadBook(db, presigner)) // GET /user/read/:book_id
		userGroup.POST("/ratings", ratingControllers.SubmitRating(db))           // POST /user/ratings
	}
}
