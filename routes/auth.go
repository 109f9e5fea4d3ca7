package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vampconnoisseur/fabels/auth"
	"github.com/vampconnoisseur/fabels/email"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, sender *email.Sender) {
	authGroup := r.Group("/auth")
	{
		// Google sign-in with a verified ID token
		authGroup.POST("/google", auth.GoogleLoginHandler(db))

		// Magic-link email sign-in
		authGroup.POST("/magic-link", auth.RequestLoginLink(db, sender))
		authGroup.GET("/verify", auth.VerifyLoginLink(db))
	}
}
