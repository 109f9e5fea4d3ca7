package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/vampconnoisseur/fabels/controllers/checkout"
	"github.com/vampconnoisseur/fabels/email"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, sender *email.Sender) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: the handler verifies the provider signature
		payment.POST("/webhook", checkoutControllers.WebhookHandler(db, sender))
	}
}
