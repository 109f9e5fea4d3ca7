package checkoutControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
	"github.com/vampconnoisseur/fabels/payments"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrAlreadyPurchased = errors.New("a book in the cart was already purchased")
)

// CheckoutResult is returned to the client so it can redirect the user to
// the hosted payment page.
type CheckoutResult struct {
	URL string `json:"url"`
	Ref string `json:"ref"`
}

// CreateCheckout snapshots the cart, opens a hosted checkout session and
// records a pending transaction carrying the session id. Nothing else is
// mutated here: sales counters, entitlements and the cart itself are only
// touched once the provider confirms payment (see webhook.go).
func CreateCheckout(ctx context.Context, db *gorm.DB, provider payments.CheckoutProvider, userID, userEmail string) (*CheckoutResult, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	bookIDs := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		bookIDs = append(bookIDs, item.BookID)
	}

	// Price from the current book rows, not the cart snapshot, so a price
	// change between add and checkout is what the user is charged.
	var books []models.Book
	if err := db.Where("id IN ?", bookIDs).Find(&books).Error; err != nil {
		return nil, err
	}

	var owned int64
	if err := db.Table("user_purchased_books").
		Where("user_id = ? AND book_id IN ?", userID, bookIDs).
		Count(&owned).Error; err != nil {
		return nil, err
	}
	if owned > 0 {
		return nil, ErrAlreadyPurchased
	}

	var total float64
	items := make([]models.TransactionItem, 0, len(books))
	for _, book := range books {
		total += book.Price
		items = append(items, models.TransactionItem{
			BookID:    book.ID,
			BookTitle: book.Title,
			BookPrice: book.Price,
		})
	}

	ref := time.Now().Format("20060102150405") + "-" + uuid.NewString()

	sess, err := provider.CreateSession(ctx, userEmail, total, ref)
	if err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		Ref:       ref,
		UserID:    userID,
		Items:     items,
		Price:     total,
		Status:    models.TransactionStatusPending,
		SessionID: sess.SessionID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&transaction).Error; err != nil {
		return nil, err
	}

	return &CheckoutResult{URL: sess.URL, Ref: ref}, nil
}

// POST /user/checkout
func CheckoutHandler(db *gorm.DB, provider payments.CheckoutProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		userEmail, _ := c.Get("email")

		result, err := CreateCheckout(c.Request.Context(), db, provider, userID, userEmail.(string))
		if err != nil {
			switch {
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, ErrAlreadyPurchased):
				c.JSON(http.StatusConflict, gin.H{"error": "A book in your cart was already purchased"})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Could not complete checkout"})
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
