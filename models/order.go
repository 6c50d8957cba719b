package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMode string

const (
	// Order statuses
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Confirmed, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item (terminal)
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping (terminal)

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	// Payment modes
	PaymentModeCOD    PaymentMode = "cash_on_delivery"
	PaymentModeOnline PaymentMode = "online_payment"
)

// Order is the durable record of one checkout. Buyer fields and line
// items are a frozen snapshot taken at creation time; only status,
// payment_status and payment_id change afterwards.
type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"index;not null" json:"user_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	ShippingAddress string        `json:"shipping_address"`
	TotalAmount     float64       `json:"total_amount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMode     PaymentMode   `gorm:"type:VARCHAR(20)" json:"payment_mode"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentID       string        `json:"payment_id"`
	TxnID           string        `gorm:"uniqueIndex;not null" json:"txn_id"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TerminalStatuses admit no further transitions.
var TerminalStatuses = []OrderStatus{OrderStatusDelivered, OrderStatusCancelled}

// CancellableStatuses are the only statuses a customer may cancel from.
var CancellableStatuses = []OrderStatus{OrderStatusPending, OrderStatusProcessing}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"` // unit price at time of order
	Quantity    int     `json:"quantity"`
}
