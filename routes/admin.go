package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/vampconnoisseur/fabels/controllers/admin"
	bookControllers "github.com/vampconnoisseur/fabels/controllers/book"
	userControllers "github.com/vampconnoisseur/fabels/controllers/user"
	"github.com/vampconnoisseur/fabels/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires a valid
// JWT for a user whose is_admin flag is set.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin(db))
	{
		// ─────────── Catalog Management ───────────
		bookAdmin := adminGroup.Group("/books")
		{
			bookAdmin.POST("", bookControllers.CreateBook(db))
			bookAdmin.PUT("/:id", bookControllers.UpdateBook(db))
			bookAdmin.GET("/export-excel", bookControllers.ExportBooksToExcel(db))
		}

		// ─────────── Dashboards ───────────
		adminGroup.GET("/sales", adminController.GetBookSales(db))
		adminGroup.GET("/transactions", adminController.GetAllTransactions(db))
		adminGroup.GET("/transactions/export-excel", adminController.ExportTransactionsToExcel(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// websocket endpoint for real-time transaction updates
		adminGroup.GET("/ws/transactions", adminController.TransactionWebSocketHandler)
	}
}
