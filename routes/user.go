package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/lakshs1/farmkfinal/controllers/cart"
	checkoutControllers "github.com/lakshs1/farmkfinal/controllers/checkout"
	orderControllers "github.com/lakshs1/farmkfinal/controllers/order"
	profileControllers "github.com/lakshs1/farmkfinal/controllers/profile"
	"github.com/lakshs1/farmkfinal/middleware"
	"gorm.io/gorm"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	user := r.Group("/user")
	user.Use(middleware.ValidateToken)
	{
		// Cart
		user.GET("/cart", cartControllers.GetUserCart(db))
		user.GET("/cart/total", cartControllers.GetCartTotal(db))
		user.POST("/cart", cartControllers.UpdateCartItem(db))
		user.DELETE("/cart", cartControllers.ClearUserCart(db))
		user.DELETE("/cart/:product_id", cartControllers.DeleteCartItem(db))

		// Profile
		user.GET("/profile", profileControllers.GetProfile(db))
		user.PUT("/profile", profileControllers.UpdateProfile(db))

		// Checkout
		user.POST("/checkout", checkoutControllers.PlaceOrderHandler(db))

		// Orders
		user.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		user.GET("/orders/:orderID", orderControllers.GetUserOrderHandler(db))
		user.PUT("/orders/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}
}
