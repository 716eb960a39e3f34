package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Description string `gorm:"not null"`
	CategoryID  uint   `gorm:"index;not null"`
	Category    Category

	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Size          string           `gorm:"size:10"` // XS, S, M, L, XL, XXL
	Color         string           `gorm:"size:20"` // RED, BLUE, GREEN, BLACK, WHITE, GRAY, NAVY, BROWN
	Sku           string           `gorm:"size:100;uniqueIndex;not null"`
	Stock         int              `gorm:"not null;default:0"`
	IsActive      bool             `gorm:"not null;default:true"`
	IsFeatured    bool             `gorm:"not null;default:false"`

	Images []ProductImage `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	URL       string `gorm:"size:500;not null"`
	AltText   string `gorm:"size:200"`
	IsPrimary bool   `gorm:"not null;default:false"`
	SortOrder int    `gorm:"not null;default:0"`
}

// CurrentPrice is the discount price when one is set.
func (p *Product) CurrentPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p *Product) DiscountPercentage() int {
	if p.DiscountPrice == nil || !p.Price.IsPositive() {
		return 0
	}
	return int(p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(decimal.NewFromInt(100)).IntPart())
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}
