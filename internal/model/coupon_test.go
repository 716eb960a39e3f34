package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func activeCoupon() *Coupon {
	return &Coupon{
		Code:          "SAVE10",
		DiscountType:  DiscountTypePercent,
		DiscountValue: decimal.NewFromInt(10),
		ValidFrom:     pinEpoch.Add(-24 * time.Hour),
		ValidTo:       pinEpoch.Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestCouponValid(t *testing.T) {
	amount := decimal.NewFromInt(100)

	c := activeCoupon()
	assert.True(t, c.Valid(pinEpoch, amount))

	inactive := activeCoupon()
	inactive.IsActive = false
	assert.False(t, inactive.Valid(pinEpoch, amount))

	assert.False(t, c.Valid(pinEpoch.Add(-48*time.Hour), amount))
	assert.False(t, c.Valid(pinEpoch.Add(48*time.Hour), amount))

	withMin := activeCoupon()
	min := decimal.NewFromInt(50)
	withMin.MinOrderAmount = &min
	assert.True(t, withMin.Valid(pinEpoch, decimal.NewFromInt(50)))
	assert.False(t, withMin.Valid(pinEpoch, decimal.NewFromInt(49)))

	exhausted := activeCoupon()
	limit := 3
	exhausted.UsageLimit = &limit
	exhausted.UsedCount = 3
	assert.False(t, exhausted.Valid(pinEpoch, amount))
}

func TestCouponDiscount_Percent(t *testing.T) {
	c := activeCoupon()

	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(200)).Equal(decimal.NewFromInt(20)))

	cap := decimal.NewFromInt(15)
	c.MaxDiscount = &cap
	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(200)).Equal(decimal.NewFromInt(15)))
	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(100)).Equal(decimal.NewFromInt(10)))
}

func TestCouponDiscount_Fixed(t *testing.T) {
	c := activeCoupon()
	c.DiscountType = DiscountTypeFixed
	c.DiscountValue = decimal.NewFromInt(25)

	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(100)).Equal(decimal.NewFromInt(25)))

	// a fixed discount never exceeds the order amount
	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(20)).Equal(decimal.NewFromInt(20)))
}

func TestCouponDiscount_InvalidCouponIsZero(t *testing.T) {
	c := activeCoupon()
	c.IsActive = false

	assert.True(t, c.Discount(pinEpoch, decimal.NewFromInt(100)).IsZero())
}
