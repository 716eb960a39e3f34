package service

import "errors"

// Expected business failures, mapped to HTTP codes by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCoupon      = errors.New("coupon is not valid for this order")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("order is not in a state that allows this transition")
	ErrPaymentConfirmed   = errors.New("payment already confirmed")
	ErrPinCooldownActive  = errors.New("a valid PIN was issued less than an hour ago")
)
