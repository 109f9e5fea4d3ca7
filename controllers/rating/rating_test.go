package ratingControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Book{}, &models.Cart{}, &models.CartItem{}, &models.Rating{},
	))
	return db
}

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.POST("/user/ratings", SubmitRating(db))
	return r
}

func seedBuyer(t *testing.T, db *gorm.DB, userID string, book *models.Book) {
	t.Helper()
	user := models.User{ID: userID, Email: userID + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).Association("PurchasedBooks").Append(book))
}

func submitRating(r *gin.Engine, bookID string, rating int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"book_id": bookID, "rating": rating})
	req := httptest.NewRequest(http.MethodPost, "/user/ratings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitRatingRequiresPurchase(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "Clean Code", Price: 20, ObjectKey: "books/book-1.pdf"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "user-1@example.com"}).Error)

	w := submitRating(newRouter(db, "user-1"), book.ID, 4)
	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestSubmitRatingOutOfRange(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "Clean Code", Price: 20, ObjectKey: "books/book-1.pdf"}
	require.NoError(t, db.Create(&book).Error)
	seedBuyer(t, db, "user-1", &book)
	r := newRouter(db, "user-1")

	require.Equal(t, http.StatusBadRequest, submitRating(r, book.ID, 0).Code)
	require.Equal(t, http.StatusBadRequest, submitRating(r, book.ID, 6).Code)
}

func TestSubmitRatingUpserts(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "Clean Code", Price: 20, ObjectKey: "books/book-1.pdf"}
	require.NoError(t, db.Create(&book).Error)
	seedBuyer(t, db, "user-1", &book)
	r := newRouter(db, "user-1")

	require.Equal(t, http.StatusOK, submitRating(r, book.ID, 3).Code)
	require.Equal(t, http.StatusOK, submitRating(r, book.ID, 5).Code)

	// Exactly one stored rating, with the latest value
	var ratings []models.Rating
	require.NoError(t, db.Where("book_id = ?", book.ID).Find(&ratings).Error)
	require.Len(t, ratings, 1)
	require.Equal(t, 5, ratings[0].Rating)

	var updated models.Book
	require.NoError(t, db.First(&updated, "id = ?", book.ID).Error)
	require.InDelta(t, 5.0, updated.AverageRating, 0.001)
}

func TestAverageRatingIsMeanAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "Clean Code", Price: 20, ObjectKey: "books/book-1.pdf"}
	require.NoError(t, db.Create(&book).Error)
	seedBuyer(t, db, "user-1", &book)
	seedBuyer(t, db, "user-2", &book)

	require.Equal(t, http.StatusOK, submitRating(newRouter(db, "user-1"), book.ID, 2).Code)
	require.Equal(t, http.StatusOK, submitRating(newRouter(db, "user-2"), book.ID, 5).Code)

	var updated models.Book
	require.NoError(t, db.First(&updated, "id = ?", book.ID).Error)
	require.InDelta(t, 3.5, updated.AverageRating, 0.001)
}
