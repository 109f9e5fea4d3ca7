package readControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
	"github.com/vampconnoisseur/fabels/storage"
)

// fakePresignAPI returns a canned URL and records the requested key.
type fakePresignAPI struct {
	calls   int
	lastKey string
}

func (f *fakePresignAPI) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.calls++
	f.lastKey = *params.Key
	return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/" + *params.Key + "?signed"}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func newRouter(db *gorm.DB, presigner *storage.Presigner, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.GET("/user/read/:book_id", ReadBook(db, presigner))
	return r
}

func TestReadBookRequiresPurchase(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "SICP", Price: 30, ObjectKey: "books/sicp.pdf"}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "user-1@example.com"}).Error)

	api := &fakePresignAPI{}
	r := newRouter(db, storage.NewPresigner(api, "fabels-books"), "user-1")

	req := httptest.NewRequest(http.MethodGet, "/user/read/book-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// No URL is issued for a book the user has not purchased
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, 0, api.calls)
}

func TestReadBookIssuesSignedURL(t *testing.T) {
	db := newTestDB(t)
	book := models.Book{ID: "book-1", Title: "SICP", Price: 30, ObjectKey: "books/sicp.pdf"}
	require.NoError(t, db.Create(&book).Error)
	user := models.User{ID: "user-1", Email: "user-1@example.com"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).Association("PurchasedBooks").Append(&book))

	api := &fakePresignAPI{}
	r := newRouter(db, storage.NewPresigner(api, "fabels-books"), "user-1")

	req := httptest.NewRequest(http.MethodGet, "/user/read/book-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, api.calls)
	require.Equal(t, "books/sicp.pdf", api.lastKey)
	require.Contains(t, w.Body.String(), "https://s3.example.com/books/sicp.pdf?signed")
}

func TestReadBookUnknownBook(t *testing.T) {
	db := newTestDB(t)
	user := models.User{ID: "user-1", Email: "user-1@example.com"}
	require.NoError(t, db.Create(&user).Error)

	api := &fakePresignAPI{}
	r := newRouter(db, storage.NewPresigner(api, "fabels-books"), "user-1")

	req := httptest.NewRequest(http.MethodGet, "/user/read/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, 0, api.calls)
}
