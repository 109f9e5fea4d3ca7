package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/email"
	"github.com/vampconnoisseur/fabels/models"
)

const loginTokenTTL = 15 * time.Minute

// POST /auth/magic-link
func RequestLoginLink(db *gorm.DB, sender *email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		loginToken := models.LoginToken{
			Token:     generateRandomString(32),
			Email:     req.Email,
			ExpiresAt: time.Now().Add(loginTokenTTL),
		}

		if err := db.Create(&loginToken).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create login link"})
			return
		}

		url := fmt.Sprintf("%s/auth/verify?token=%s", os.Getenv("APP_URL"), loginToken.Token)
		if err := sender.SendLoginLink(c.Request.Context(), req.Email, url); err != nil {
			log.Println("❌ Failed to send login link:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send login link"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login link sent"})
	}
}

// GET /auth/verify?token=
func VerifyLoginLink(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenParam := c.Query("token")
		if tokenParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		var loginToken models.LoginToken
		if err := db.Where("token = ? AND expires_at > ?", tokenParam, time.Now()).
			First(&loginToken).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired login link"})
			return
		}

		// Single use
		if err := db.Delete(&loginToken).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify login link"})
			return
		}

		// Fetch or create the user for this address
		var user models.User
		err := db.Preload("Cart.Items").Where("email = ?", loginToken.Email).First(&user).Error

		if err == gorm.ErrRecordNotFound {
			userID := uuid.NewString()
			user = models.User{
				ID:       userID,
				Email:    loginToken.Email,
				Provider: "email",
				Cart:     models.Cart{UserID: userID},
			}

			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err != nil {
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

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_token"
	}
	return hex.EncodeToString(bytes)
}
