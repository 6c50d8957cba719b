package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/lakshs1/farmkfinal/controllers/payment"
	"github.com/lakshs1/farmkfinal/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		// Signature computation; the merchant salt stays server-side
		payment.POST("/request", middleware.ValidateToken, paymentControllers.PaymentRequestHandler())

		// Hosted page redirects back here; each handler re-verifies the
		// response hash before touching any order
		payment.POST("/success", paymentControllers.PaymentSuccessHandler(db))
		payment.POST("/failure", paymentControllers.PaymentFailureHandler(db))
	}
}
