package dto

import "time"

// ---- auth ----

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	ID                   uint   `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	City                 string `json:"city"`
	State                string `json:"state"`
	ZipCode              string `json:"zip_code"`
	Country              string `json:"country"`
	ShippingAddress      string `json:"shipping_address"`
	ShippingCity         string `json:"shipping_city"`
	ShippingState        string `json:"shipping_state"`
	ShippingZip          string `json:"shipping_zip"`
	NewsletterSubscribed bool   `json:"newsletter_subscribed"`
}

type UpdateProfileRequest struct {
	FirstName            *string `json:"first_name"`
	LastName             *string `json:"last_name"`
	Phone                *string `json:"phone"`
	Address              *string `json:"address"`
	City                 *string `json:"city"`
	State                *string `json:"state"`
	ZipCode              *string `json:"zip_code"`
	Country              *string `json:"country"`
	ShippingAddress      *string `json:"shipping_address"`
	ShippingCity         *string `json:"shipping_city"`
	ShippingState        *string `json:"shipping_state"`
	ShippingZip          *string `json:"shipping_zip"`
	NewsletterSubscribed *bool   `json:"newsletter_subscribed"`
}

// ---- catalog ----

type ProductListRequest struct {
	Category string   `query:"category"`
	Query    string   `query:"q"`
	MinPrice *float64 `query:"min_price"`
	MaxPrice *float64 `query:"max_price"`
	Sort     string   `query:"sort"`
	Featured bool     `query:"featured"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=200"`
	Comment string `json:"comment" validate:"required"`
}

// ---- cart ----

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ---- checkout ----

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingCity    string `json:"shipping_city" validate:"required"`
	ShippingState   string `json:"shipping_state" validate:"required"`
	ShippingZip     string `json:"shipping_zip" validate:"required"`
	ShippingCountry string `json:"shipping_country" validate:"required"`

	BillingAddress string `json:"billing_address"`
	BillingCity    string `json:"billing_city"`
	BillingState   string `json:"billing_state"`
	BillingZip     string `json:"billing_zip"`
	BillingCountry string `json:"billing_country"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=COD CARD PAYPAL STRIPE"`
	CouponCode    string `json:"coupon_code"`
	Notes         string `json:"notes"`
}

type CheckoutResponse struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       string `json:"total"`
	Status      string `json:"status"`
}

// ---- payment verification ----

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type VerifyPinResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GeneratePinResponse struct {
	Pin       string `json:"pin"`
	ExpiresIn string `json:"expires_in"`
}

// PaymentStatusResponse is the customer-facing countdown view.
type PaymentStatusResponse struct {
	PaymentStatus     bool   `json:"payment_status"`
	PinValid          bool   `json:"pin_valid"`
	ExpiresIn         string `json:"expires_in"`
	AttemptsRemaining int    `json:"attempts_remaining"`
	CanGenerateNewPin bool   `json:"can_generate_new_pin"`
}
