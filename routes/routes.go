package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public,
// user, admin and payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public catalog (no middleware)
	SetupProductRoutes(r, db)

	// User routes (JWT-protected): cart, profile, orders, checkout
	SetupUserRoutes(r, db)

	// Payment gateway handoff and callbacks
	SetupPaymentRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
