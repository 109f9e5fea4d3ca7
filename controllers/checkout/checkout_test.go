package checkoutControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
	"github.com/vampconnoisseur/fabels/payments"
)

// fakeProvider records session creations instead of calling Stripe.
type fakeProvider struct {
	calls int
	fail  bool
}

func (f *fakeProvider) CreateSession(ctx context.Context, userEmail string, total float64, ref string) (*payments.CheckoutSession, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("provider unavailable")
	}
	return &payments.CheckoutSession{
		SessionID: fmt.Sprintf("cs_test_%d", f.calls),
		URL:       "https://checkout.example.com/" + ref,
	}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Book{}, &models.Cart{}, &models.CartItem{},
		&models.Transaction{}, &models.TransactionItem{}, &models.Rating{},
	))
	return db
}

func newRouter(db *gorm.DB, provider payments.CheckoutProvider, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", userID+"@example.com")
	})
	r.POST("/user/checkout", CheckoutHandler(db, provider))
	return r
}

func seedUserWithCart(t *testing.T, db *gorm.DB, userID string, books ...models.Book) {
	t.Helper()
	user := models.User{
		ID:    userID,
		Email: userID + "@example.com",
		Cart:  models.Cart{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", userID).First(&cart).Error)

	for i := range books {
		require.NoError(t, db.Create(&books[i]).Error)
		require.NoError(t, db.Create(&models.CartItem{
			CartID:    cart.CartID,
			BookID:    books[i].ID,
			BookTitle: books[i].Title,
			BookPrice: books[i].Price,
			AddedAt:   time.Now(),
		}).Error)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1")
	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Cart is empty")

	// No payment session is created for an empty cart
	require.Equal(t, 0, provider.calls)
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestCheckoutCreatesPendingTransaction(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
		models.Book{ID: "book-2", Title: "Book Two", Price: 15.5, ObjectKey: "books/2.pdf"},
	)
	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, provider.calls)

	var transaction models.Transaction
	require.NoError(t, db.Preload("Items").First(&transaction).Error)
	require.Equal(t, models.TransactionStatusPending, transaction.Status)
	require.Equal(t, "cs_test_1", transaction.SessionID)
	require.InDelta(t, 25.5, transaction.Price, 0.001)
	require.Len(t, transaction.Items, 2)

	// Nothing is fulfilled before the provider confirms: cart intact,
	// no sales, no entitlements.
	var cartItems int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartItems).Error)
	require.EqualValues(t, 2, cartItems)

	var book models.Book
	require.NoError(t, db.First(&book, "id = ?", "book-1").Error)
	require.Equal(t, 0, book.Sales)

	var owned int64
	require.NoError(t, db.Table("user_purchased_books").Where("user_id = ?", "user-1").Count(&owned).Error)
	require.EqualValues(t, 0, owned)
}

func TestCheckoutProviderFailure(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
	)
	provider := &fakeProvider{fail: true}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	// No transaction row without a session
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestCheckoutRejectsAlreadyPurchased(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
	)
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	require.NoError(t, db.Model(&user).Association("PurchasedBooks").Append(&models.Book{ID: "book-1"}))

	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, 0, provider.calls)
}

func TestMarkSessionPaidFulfillsPurchase(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
		models.Book{ID: "book-2", Title: "Book Two", Price: 15.5, ObjectKey: "books/2.pdf"},
	)
	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	paid, err := MarkSessionPaid(db, "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, paid)
	require.Equal(t, "user-1@example.com", paid.User.Email)

	var transaction models.Transaction
	require.NoError(t, db.First(&transaction, "session_id = ?", "cs_test_1").Error)
	require.Equal(t, models.TransactionStatusPaid, transaction.Status)

	// Cart is empty and the purchased set contains every book that was in it
	var cartItems int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartItems).Error)
	require.EqualValues(t, 0, cartItems)

	for _, bookID := range []string{"book-1", "book-2"} {
		var owned int64
		require.NoError(t, db.Table("user_purchased_books").
			Where("user_id = ? AND book_id = ?", "user-1", bookID).Count(&owned).Error)
		require.EqualValues(t, 1, owned, "expected %s to be owned", bookID)

		var book models.Book
		require.NoError(t, db.First(&book, "id = ?", bookID).Error)
		require.Equal(t, 1, book.Sales)
	}
}

func TestMarkSessionPaidIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
	)
	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	first, err := MarkSessionPaid(db, "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, first)

	// A webhook retry for the same session settles nothing new
	second, err := MarkSessionPaid(db, "cs_test_1")
	require.NoError(t, err)
	require.Nil(t, second)

	var book models.Book
	require.NoError(t, db.First(&book, "id = ?", "book-1").Error)
	require.Equal(t, 1, book.Sales)
}

func TestMarkSessionPaidUnknownSession(t *testing.T) {
	db := newTestDB(t)

	paid, err := MarkSessionPaid(db, "cs_unknown")
	require.NoError(t, err)
	require.Nil(t, paid)
}

func TestMarkSessionFailed(t *testing.T) {
	db := newTestDB(t)
	seedUserWithCart(t, db, "user-1",
		models.Book{ID: "book-1", Title: "Book One", Price: 10, ObjectKey: "books/1.pdf"},
	)
	provider := &fakeProvider{}
	r := newRouter(db, provider, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, MarkSessionFailed(db, "cs_test_1"))

	var transaction models.Transaction
	require.NoError(t, db.First(&transaction, "session_id = ?", "cs_test_1").Error)
	require.Equal(t, models.TransactionStatusFailed, transaction.Status)

	// An abandoned session grants nothing
	var owned int64
	require.NoError(t, db.Table("user_purchased_books").Where("user_id = ?", "user-1").Count(&owned).Error)
	require.EqualValues(t, 0, owned)
}
