package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/lakshs1/farmkfinal/controllers/product"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("/", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProduct(db))
	}
}
