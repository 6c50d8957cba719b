package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/lakshs1/farmkfinal/controllers/order"
	"github.com/lakshs1/farmkfinal/middleware"
	"github.com/lakshs1/farmkfinal/models"
	"github.com/lakshs1/farmkfinal/payu"
	"gorm.io/gorm"
)

// -------- Errors --------

var (
	ErrEmptyAddress = errors.New("shipping address is required")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrZeroTotal    = errors.New("order total must be greater than zero")

	// ErrInsufficientStock means a conditional stock decrement matched
	// no row: someone else bought the last units first.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPaymentSetup means the signed gateway request could not be
	// built; checkout aborts before any order is written or any
	// redirect happens.
	ErrPaymentSetup = errors.New("payment setup failed")

	// ErrPartialWrite marks an order whose line items could not be
	// saved after the header. The transaction rolls the header back,
	// but a blind retry could still duplicate the order, so the caller
	// must distinguish this from ordinary retryable failures.
	ErrPartialWrite = errors.New("order items could not be saved")
)

// -------- Request Structs --------

type PlaceOrderInput struct {
	PaymentMode     string `json:"payment_mode" binding:"required"`
	ShippingAddress string `json:"shipping_address"`
}

// Buyer is the contact snapshot frozen onto the order.
type Buyer struct {
	Name  string
	Email string
	Phone string
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into one order. For online payment
// the gateway request is built and signed before anything is written:
// a signature failure must abort checkout with no order created and no
// redirect. The write itself is a single transaction in a fixed order:
// order header, line items, conditional stock decrements, cart clear.
// Control never returns here after the browser leaves for the hosted
// page; the payment callbacks reconcile the outcome by txn id.
func PlaceOrder(db *gorm.DB, userID string, buyer Buyer, mode models.PaymentMode, shippingAddress string) (*models.Order, map[string]string, error) {
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, nil, ErrEmptyAddress
	}

	var items []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	total := models.CartTotal(items, models.DiscountRate())
	if total <= 0 {
		return nil, nil, ErrZeroTotal
	}

	txnID := payu.NewTxnID()

	var paymentFields map[string]string
	if mode == models.PaymentModeOnline {
		cfg, err := payu.LoadConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrPaymentSetup, err)
		}
		paymentFields, err = cfg.BuildRequest(payu.RequestParams{
			TxnID:       txnID,
			Amount:      payu.FormatAmount(total),
			ProductInfo: "Order",
			FirstName:   buyer.Name,
			Email:       buyer.Email,
			Phone:       buyer.Phone,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrPaymentSetup, err)
		}
	}

	order := models.Order{
		UserID:          userID,
		CustomerName:    buyer.Name,
		CustomerEmail:   buyer.Email,
		CustomerPhone:   buyer.Phone,
		ShippingAddress: address,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentMode:     mode,
		PaymentStatus:   models.PaymentStatusPending,
		TxnID:           txnID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Price:       item.Product.Price,
				Quantity:    item.Quantity,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPartialWrite, err)
		}

		// Single conditional UPDATE per product, never read-then-write,
		// so concurrent checkouts cannot oversell.
		for _, item := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Product.Name)
			}
		}

		// Cart is cleared only after the order and items are in.
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &order, paymentFields, nil
}

// -------- Handlers --------

// PlaceOrderHandler confirms one checkout attempt. At most one order is
// created per confirmation: the order is keyed by a fresh unique txn id
// and the whole write path is a single synchronous transaction.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		mode := models.PaymentMode(input.PaymentMode)
		if mode != models.PaymentModeCOD && mode != models.PaymentModeOnline {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_mode must be cash_on_delivery or online_payment"})
			return
		}

		buyer := resolveBuyer(c, db, userID)

		operation := "place_cod"
		if mode == models.PaymentModeOnline {
			operation = "place_online"
		}

		order, paymentFields, err := PlaceOrder(db, userID, buyer, mode, input.ShippingAddress)
		if err != nil {
			middleware.RecordCheckoutOperation(operation, false)
			respondCheckoutError(c, err)
			return
		}
		middleware.RecordCheckoutOperation(operation, true)
		orderControllers.BroadcastNewOrder(*order)

		if mode == models.PaymentModeCOD {
			c.JSON(http.StatusOK, gin.H{
				"message": "Order placed successfully",
				"order":   order,
			})
			return
		}

		// The client form-posts these fields to the hosted page; the
		// outcome comes back through the payment callbacks.
		c.JSON(http.StatusOK, gin.H{
			"order":   order,
			"payment": paymentFields,
		})
	}
}

// resolveBuyer merges the stored profile with the identity provider's
// claims, preferring the profile.
func resolveBuyer(c *gin.Context, db *gorm.DB, userID string) Buyer {
	buyer := Buyer{
		Name:  c.GetString("name"),
		Email: c.GetString("email"),
		Phone: c.GetString("phone"),
	}

	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err == nil {
		if profile.FullName != "" {
			buyer.Name = profile.FullName
		}
		if profile.Phone != "" {
			buyer.Phone = profile.Phone
		}
	}

	if buyer.Name == "" {
		buyer.Name = "Customer"
	}
	return buyer
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyAddress), errors.Is(err, ErrEmptyCart), errors.Is(err, ErrZeroTotal):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPartialWrite):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Your order could not be saved completely. Please contact support before retrying to avoid a duplicate order.",
		})
	case errors.Is(err, ErrPaymentSetup):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment setup failed. You have not been charged; please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
	}
}
