package model

import "time"

type Review struct {
	ID         uint   `gorm:"primaryKey"`
	ProductID  uint   `gorm:"index:idx_product_user,unique;not null"`
	UserID     uint   `gorm:"index:idx_product_user,unique;not null"`
	Rating     int    `gorm:"not null"` // 1..5
	Title      string `gorm:"size:200;not null"`
	Comment    string `gorm:"not null"`
	IsApproved bool   `gorm:"not null;default:false"`

	User User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
