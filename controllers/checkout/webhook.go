package checkoutControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	adminController "github.com/vampconnoisseur/fabels/controllers/admin"
	"github.com/vampconnoisseur/fabels/email"
	"github.com/vampconnoisseur/fabels/models"
)

const webhookMaxBodyBytes = int64(65536)

// MarkSessionPaid performs the pending -> paid transition for the
// transaction carrying the given checkout session id, all in one database
// transaction: sales counters, purchased-book entitlements and the cart
// clear either all land or none do. Returns the paid transaction, or nil
// when the session is unknown or already settled (idempotent).
func MarkSessionPaid(db *gorm.DB, sessionID string) (*models.Transaction, error) {
	var paid *models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Preload("Items").Preload("User").
			Where("session_id = ? AND status = ?", sessionID, models.TransactionStatusPending).
			First(&transaction).Error
		if err == gorm.ErrRecordNotFound {
			return nil // unknown or already settled, ack without touching anything
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&transaction).
			Update("status", models.TransactionStatusPaid).Error; err != nil {
			return err
		}

		user := models.User{ID: transaction.UserID}
		for _, item := range transaction.Items {
			if err := tx.Model(&models.Book{}).Where("id = ?", item.BookID).
				UpdateColumn("sales", gorm.Expr("sales + 1")).Error; err != nil {
				return err
			}

			if err := tx.Model(&user).Association("PurchasedBooks").
				Append(&models.Book{ID: item.BookID}); err != nil {
				return err
			}
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", transaction.UserID).First(&cart).Error; err == nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}

		paid = &transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paid, nil
}

// MarkSessionFailed settles an abandoned or declined session.
func MarkSessionFailed(db *gorm.DB, sessionID string) error {
	return db.Model(&models.Transaction{}).
		Where("session_id = ? AND status = ?", sessionID, models.TransactionStatusPending).
		Update("status", models.TransactionStatusFailed).Error
}

// WebhookHandler consumes payment-provider events. Signature-checked; the
// provider retries on non-2xx, so transient DB errors return 500.
// POST /payment/webhook
func WebhookHandler(db *gorm.DB, sender *email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
			return
		}

		switch event.Type {
		case "checkout.session.completed":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook event"})
				return
			}

			transaction, err := MarkSessionPaid(db, session.ID)
			if err != nil {
				log.Println("❌ Failed to settle paid session:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle payment"})
				return
			}
			if transaction == nil {
				c.JSON(http.StatusOK, gin.H{"message": "Nothing to settle"})
				return
			}

			adminController.BroadcastTransaction(*transaction)

			// Email failure does not undo the settlement; the purchase is
			// already confirmed and entitlements granted.
			if err := sender.SendOrderConfirmation(c.Request.Context(), transaction.User.Email,
				transaction.Items, transaction.Price); err != nil {
				log.Println("❌ Failed to send order confirmation:", err)
			}

			c.JSON(http.StatusOK, gin.H{"message": "Payment settled"})

		case "checkout.session.expired":
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook event"})
				return
			}

			if err := MarkSessionFailed(db, session.ID); err != nil {
				log.Println("❌ Failed to mark session failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update transaction"})
				return
			}

			c.JSON(http.StatusOK, gin.H{"message": "Session marked failed"})

		default:
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		}
	}
}
