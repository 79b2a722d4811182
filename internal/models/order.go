package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Terminal states (delivered, cancelled) are set by the
// admin workflow; the checkout/payment flow only moves pending -> confirmed.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values for an order.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment methods offered at checkout.
const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

// ShippingAddress is the structured delivery address captured at checkout.
// Stored as a JSON column on the order.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone"`
}

// OrderItem represents a single line within an order. UnitPrice is captured at
// order time and must not follow later product price changes.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2)"`
	Color     string          `json:"color,omitempty"`
}

// Order represents a customer purchase record.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;type:varchar(64)"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2)"`
	ShippingFee     decimal.Decimal `json:"shipping_fee" gorm:"type:decimal(12,2)"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	Currency        string          `json:"currency" gorm:"type:varchar(8)"`
	Status          string          `json:"status" gorm:"type:varchar(16)"`
	PaymentStatus   string          `json:"payment_status" gorm:"type:varchar(16)"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(16)"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty" gorm:"type:varchar(64)"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"serializer:json"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MinorUnits converts the order total to integer minor currency units
// (e.g. pesos to centavos) for the payment gateway.
func (o *Order) MinorUnits() int64 {
	return o.TotalAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
