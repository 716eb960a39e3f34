package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItem `gorm:"foreignKey:CartID"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	CartID    uint `gorm:"index:idx_cart_product,unique;not null"`
	ProductID uint `gorm:"index:idx_cart_product,unique;not null"`
	Quantity  int  `gorm:"not null;default:1"`
	AddedAt   time.Time

	Product Product `gorm:"foreignKey:ProductID"`
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.TotalPrice())
	}
	return subtotal
}

func (i *CartItem) TotalPrice() decimal.Decimal {
	return i.Product.CurrentPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
