package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercent = "PERCENT"
	DiscountTypeFixed   = "FIXED"
)

type Coupon struct {
	ID            uint   `gorm:"primaryKey"`
	Code          string `gorm:"size:50;uniqueIndex;not null"`
	Description   string
	DiscountType  string          `gorm:"size:10;not null"` // PERCENT, FIXED
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	MinOrderAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	MaxDiscount    *decimal.Decimal `gorm:"type:decimal(10,2)"`

	ValidFrom  time.Time `gorm:"not null"`
	ValidTo    time.Time `gorm:"not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	UsageLimit *int
	UsedCount  int `gorm:"not null;default:0"`
}

// Valid reports whether the coupon applies to an order of the given amount
// at the given time.
func (c *Coupon) Valid(now time.Time, orderAmount decimal.Decimal) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	if c.MinOrderAmount != nil && orderAmount.LessThan(*c.MinOrderAmount) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Discount computes the discount for an order amount, zero when the coupon
// does not apply. Percentage discounts are capped by MaxDiscount, fixed
// discounts by the order amount itself.
func (c *Coupon) Discount(now time.Time, orderAmount decimal.Decimal) decimal.Decimal {
	if !c.Valid(now, orderAmount) {
		return decimal.Zero
	}

	if c.DiscountType == DiscountTypePercent {
		discount := orderAmount.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil && discount.GreaterThan(*c.MaxDiscount) {
			discount = *c.MaxDiscount
		}
		return discount
	}

	if c.DiscountValue.GreaterThan(orderAmount) {
		return orderAmount
	}
	return c.DiscountValue
}
