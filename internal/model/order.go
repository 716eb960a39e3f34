package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. PENDING -> PROCESSING happens only through payment
// confirmation; shipping transitions are staff operations.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodCard   = "CARD"
	PaymentMethodPaypal = "PAYPAL"
	PaymentMethodStripe = "STRIPE"
)

// Payment PIN policy.
const (
	PinValidity      = 24 * time.Hour
	PinRegenCooldown = time.Hour
	MaxPinAttempts   = 5
	PinLockoutWindow = 5 * time.Minute
)

type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:30;uniqueIndex;not null"`
	UserID      uint   `gorm:"index;not null"`

	ShippingAddress string `gorm:"not null"`
	ShippingCity    string `gorm:"size:100;not null"`
	ShippingState   string `gorm:"size:100;not null"`
	ShippingZip     string `gorm:"size:20;not null"`
	ShippingCountry string `gorm:"size:100;not null"`

	BillingAddress string
	BillingCity    string `gorm:"size:100"`
	BillingState   string `gorm:"size:100"`
	BillingZip     string `gorm:"size:20"`
	BillingCountry string `gorm:"size:100"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tax          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount     decimal.Decimal `gorm:"type:decimal(10,2)"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CouponCode   string          `gorm:"size:50"`

	Status        string `gorm:"size:20;index;not null"` // PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED, REFUNDED
	PaymentMethod string `gorm:"size:20;not null"`
	PaymentStatus bool   `gorm:"not null;default:false"`

	// Payment PIN state. Expiry is evaluated at read time; expired PINs
	// stay stored until regenerated or reset.
	PaymentPin            string `gorm:"size:6;index"`
	PaymentPinGeneratedAt *time.Time
	PaymentPinExpiresAt   *time.Time
	PaymentAttempts       int `gorm:"not null;default:0"`
	LastPaymentAttempt    *time.Time
	PaymentConfirmedAt    *time.Time
	PaymentVerifiedBy     string `gorm:"size:150"` // issuer before confirmation, verifier after

	Notes string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	// unit price at time of purchase
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product   Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsPaymentPinValid reports whether a PIN is present and unexpired.
func (o *Order) IsPaymentPinValid(now time.Time) bool {
	if o.PaymentPin == "" || o.PaymentPinExpiresAt == nil {
		return false
	}
	return !now.After(*o.PaymentPinExpiresAt)
}

// CanGenerateNewPin is the cooldown against PIN churn: a new PIN may be
// issued when none was ever generated, the current one is expired, or at
// least an hour has passed since generation.
func (o *Order) CanGenerateNewPin(now time.Time) bool {
	if o.PaymentPinGeneratedAt == nil {
		return true
	}
	if !o.IsPaymentPinValid(now) {
		return true
	}
	return now.Sub(*o.PaymentPinGeneratedAt) >= PinRegenCooldown
}

// PinExpiresIn formats the remaining PIN lifetime: minutes under an hour,
// whole hours otherwise, both floored.
func (o *Order) PinExpiresIn(now time.Time) string {
	if !o.IsPaymentPinValid(now) {
		return "Expired"
	}
	left := o.PaymentPinExpiresAt.Sub(now)
	if left < time.Hour {
		return fmt.Sprintf("%d minutes", int(left.Minutes()))
	}
	return fmt.Sprintf("%d hours", int(left.Hours()))
}

func (o *Order) AttemptsRemaining() int {
	remaining := MaxPinAttempts - o.PaymentAttempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsLockedOut reports whether failed attempts have tripped the temporary
// verification block.
func (o *Order) IsLockedOut(now time.Time) bool {
	if o.PaymentAttempts < MaxPinAttempts || o.LastPaymentAttempt == nil {
		return false
	}
	return now.Sub(*o.LastPaymentAttempt) < PinLockoutWindow
}
