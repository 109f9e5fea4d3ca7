package auth

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/models"
)

// POST /auth/google
func GoogleLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		ctx := context.Background()

		// Verify Firebase token
		token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
			return
		}

		if token.Audience != projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		// Extract user info
		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		googleUserID := token.UID

		// Fetch or create user
		var user models.User
		err = db.Preload("Cart.Items").Where("id = ?", googleUserID).First(&user).Error

		if err == gorm.ErrRecordNotFound {
			user = models.User{
				ID:       googleUserID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
				Cart:     models.Cart{UserID: googleUserID},
			}

			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			// Returning user: refresh the Google profile fields
			db.Model(&user).Updates(models.User{
				Name:    name,
				Picture: picture,
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   issueJWT(user.ID, user.Email, user.IsAdmin),
		})
	}
}

// issueJWT generates a signed session token for a user
func issueJWT(userID, email string, isAdmin bool) string {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}
