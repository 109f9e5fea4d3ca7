package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookControllers "github.com/vampconnoisseur/fabels/controllers/book"
)

// SetupBookRoutes registers the public catalog endpoints.
func SetupBookRoutes(r *gin.Engine, db *gorm.DB) {
	books := r.Group("/books")
	{
		books.GET("", bookControllers.GetBooks(db))        // GET /books
		books.GET("/:id", bookControllers.GetBookByID(db)) // GET /books/:id
	}
}
