package model

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`
	Phone        string `gorm:"size:20"`

	Address string
	City    string `gorm:"size:100"`
	State   string `gorm:"size:100"`
	ZipCode string `gorm:"size:20"`
	Country string `gorm:"size:100"`

	// Shipping address, may differ from the billing one above.
	ShippingAddress string
	ShippingCity    string `gorm:"size:100"`
	ShippingState   string `gorm:"size:100"`
	ShippingZip     string `gorm:"size:20"`

	NewsletterSubscribed bool `gorm:"not null;default:true"`
	IsStaff              bool `gorm:"not null;default:false"`
	IsActive             bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type WishlistItem struct {
	UserID    uint `gorm:"primaryKey"`
	ProductID uint `gorm:"primaryKey;index;not null"`
	CreatedAt time.Time
}
