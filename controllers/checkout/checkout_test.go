package checkoutControllers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lakshs1/farmkfinal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Profile{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID string, price float64, quantity, stock int) models.Product {
	product := models.Product{
		Name:          "Cold Pressed Groundnut Oil 1L",
		Price:         price,
		StockQuantity: stock,
		Category:      "groundnut",
		Active:        true,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}).Error)
	return product
}

func setPayUEnv(t *testing.T) {
	t.Setenv("PAYU_KEY", "merchantkey")
	t.Setenv("PAYU_SALT", "merchantsalt")
	t.Setenv("PAYU_BASE_URL", "https://pay.example.com/_payment")
	t.Setenv("PAYU_SUCCESS_URL", "https://shop.example.com/payment/success")
	t.Setenv("PAYU_FAILURE_URL", "https://shop.example.com/payment/failure")
}

var testBuyer = Buyer{Name: "Asha", Email: "asha@mail.com", Phone: "9876543210"}

func TestPlaceOrderCOD(t *testing.T) {
	db := initTestDB(t)
	product := seedCart(t, db, "user-1", 500, 2, 10)

	order, fields, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.NoError(t, err)
	require.Nil(t, fields)

	// 500 * 2 * 0.8
	require.Equal(t, 800.00, order.TotalAmount)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, models.PaymentModeCOD, order.PaymentMode)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Empty(t, order.PaymentID)
	require.Len(t, order.TxnID, 20)

	// Line items are a frozen snapshot of price at time of order
	require.Len(t, order.Items, 1)
	require.Equal(t, product.ID, order.Items[0].ProductID)
	require.Equal(t, 500.00, order.Items[0].Price)
	require.Equal(t, 2, order.Items[0].Quantity)

	// Exactly one order exists
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Cart cleared only after the order write succeeded
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&count).Error)
	require.Equal(t, int64(0), count)

	// Stock decremented atomically
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	require.Equal(t, 8, reloaded.StockQuantity)
}

func TestPlaceOrderRejectsEmptyAddress(t *testing.T) {
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	for _, address := range []string{"", "   ", "\t\n"} {
		_, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, address)
		require.ErrorIs(t, err, ErrEmptyAddress)
	}

	// No order was created and the cart is untouched
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	db := initTestDB(t)

	_, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := initTestDB(t)
	product := seedCart(t, db, "user-1", 500, 5, 3)

	_, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Transaction rolled back: no order, cart intact, stock unchanged
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	require.Equal(t, 3, reloaded.StockQuantity)
}

func TestPlaceOrderOnline(t *testing.T) {
	setPayUEnv(t)
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	order, fields, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeOnline, "12 Mill Road, Erode")
	require.NoError(t, err)
	require.NotNil(t, fields)

	require.Equal(t, models.PaymentModeOnline, order.PaymentMode)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Empty(t, order.PaymentID)

	// The signed request is keyed to the order so the callback can
	// find it again
	require.Equal(t, order.TxnID, fields["txnid"])
	require.Equal(t, "800.00", fields["amount"])
	require.NotEmpty(t, fields["hash"])
	require.Equal(t, "https://pay.example.com/_payment", fields["action"])

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestPlaceOrderOnlineAbortsWhenGatewayUnconfigured(t *testing.T) {
	t.Setenv("PAYU_KEY", "")
	t.Setenv("PAYU_SALT", "")
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	_, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeOnline, "12 Mill Road, Erode")
	require.ErrorIs(t, err, ErrPaymentSetup)

	// Aborted before any write: no order, cart intact
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestPlaceOrderOnlineAbortsWhenBuyerIncomplete(t *testing.T) {
	setPayUEnv(t)
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	buyer := Buyer{Name: "Asha"} // no email: signer must reject
	_, _, err := PlaceOrder(db, "user-1", buyer, models.PaymentModeOnline, "12 Mill Road, Erode")
	require.ErrorIs(t, err, ErrPaymentSetup)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestPlaceOrderSecondConfirmationFindsEmptyCart(t *testing.T) {
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	_, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.NoError(t, err)

	// A duplicate confirmation after the first completed cannot create
	// a second order: the cart was cleared with the first one.
	_, _, err = PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestPlaceOrderCustomDiscountRate(t *testing.T) {
	t.Setenv("DISCOUNT_RATE", "1.0")
	db := initTestDB(t)
	seedCart(t, db, "user-1", 500, 2, 10)

	order, _, err := PlaceOrder(db, "user-1", testBuyer, models.PaymentModeCOD, "12 Mill Road, Erode")
	require.NoError(t, err)
	require.Equal(t, 1000.00, order.TotalAmount)
}
