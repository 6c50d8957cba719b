package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/lakshs1/farmkfinal/controllers/cart"
	orderControllers "github.com/lakshs1/farmkfinal/controllers/order"
	productcontroller "github.com/lakshs1/farmkfinal/controllers/product"
	profileControllers "github.com/lakshs1/farmkfinal/controllers/profile"
	"github.com/lakshs1/farmkfinal/middleware"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// Catalog management
		admin.GET("/products", productcontroller.GetAllProductsAdmin(db))
		admin.POST("/products", productcontroller.CreateProduct(db))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db))

		// Orders
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		admin.DELETE("/orders/:orderID", orderControllers.DeleteOrderHandler(db))

		// Customers
		admin.GET("/profiles", profileControllers.GetAllProfiles(db))
		admin.GET("/cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
