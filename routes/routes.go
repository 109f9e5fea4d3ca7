package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/email"
	"github.com/vampconnoisseur/fabels/payments"
	"github.com/vampconnoisseur/fabels/storage"
)

// SetupRoutes is the single entry‐point that wires up Auth, Book, User,
// Admin and Payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, provider payments.CheckoutProvider, presigner *storage.Presigner, sender *email.Sender) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db, sender)

	// 2️⃣ Public catalog routes
	SetupBookRoutes(r, db)

	// 3️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, db, provider, presigner)

	// 4️⃣ Admin routes (JWT + is_admin)
	SetupAdminRoutes(r, db)

	// payment provider webhook
	SetupPaymentRoutes(r, db, sender)
}
