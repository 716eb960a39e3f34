package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	flatShippingCost = decimal.NewFromFloat(10.00)
	taxRate          = decimal.NewFromFloat(0.08)
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID uint, req *dto.CheckoutRequest) (*model.Order, error)
}

type checkoutServiceImpl struct {
	db       *gorm.DB
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	coupons  repository.CouponRepository

	now func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	coupons repository.CouponRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:       db,
		carts:    carts,
		products: products,
		orders:   orders,
		coupons:  coupons,
		now:      time.Now,
	}
}

// Checkout turns the user's cart into a PENDING order: stock is checked and
// decremented per line, totals are computed (flat shipping, 8% tax, optional
// coupon), billing falls back to shipping, and the cart is cleared. All of
// it runs in one transaction.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uint, req *dto.CheckoutRequest) (*model.Order, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	for _, item := range cart.Items {
		if item.Quantity > item.Product.Stock {
			return nil, ErrInsufficientStock
		}
	}

	now := s.now()
	subtotal := cart.Subtotal()

	discount := decimal.Zero
	var coupon *model.Coupon
	if req.CouponCode != "" {
		coupon, err = s.coupons.FindByCode(ctx, req.CouponCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, fmt.Errorf("load coupon: %w", err)
		}
		if !coupon.Valid(now, subtotal) {
			return nil, ErrInvalidCoupon
		}
		discount = coupon.Discount(now, subtotal)
	}

	shipping := flatShippingCost
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	order := &model.Order{
		OrderNumber: newOrderNumber(now),
		UserID:      userID,

		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: req.ShippingCountry,

		BillingAddress: req.BillingAddress,
		BillingCity:    req.BillingCity,
		BillingState:   req.BillingState,
		BillingZip:     req.BillingZip,
		BillingCountry: req.BillingCountry,

		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Discount:     discount,
		Total:        total,
		CouponCode:   req.CouponCode,

		Status:        model.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	// billing defaults to shipping
	if order.BillingAddress == "" {
		order.BillingAddress = order.ShippingAddress
		order.BillingCity = order.ShippingCity
		order.BillingState = order.ShippingState
		order.BillingZip = order.ShippingZip
		order.BillingCountry = order.ShippingCountry
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		orderItems := make([]*model.OrderItem, len(cart.Items))
		for i, item := range cart.Items {
			orderItems[i] = &model.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.CurrentPrice(),
			}

			if err := s.products.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInsufficientStock
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		if err := s.orders.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		if coupon != nil {
			if err := s.coupons.IncrementUsage(ctx, tx, coupon.ID); err != nil {
				return fmt.Errorf("increment coupon usage: %w", err)
			}
		}

		return s.carts.Clear(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// newOrderNumber builds ORD-YYYYMMDD-XXXXXXXX with a random hex suffix.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
