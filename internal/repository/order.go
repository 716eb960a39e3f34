package repository

import (
	"context"
	"time"

	"clothing-shop-api/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Order, error)

	// Payment PIN persistence. Each call updates exactly the named fields.
	SavePin(ctx context.Context, order *model.Order) error
	RecordFailedAttempt(ctx context.Context, orderID uint, attempts int, at time.Time) error
	ConfirmPayment(ctx context.Context, orderID uint, verifiedBy string, at time.Time) error
	ResetPin(ctx context.Context, orderID uint) error
	PinInUse(ctx context.Context, pin string, excludeOrderID uint, now time.Time) (bool, error)

	MarkShipped(ctx context.Context, orderID uint, at time.Time) error
	MarkDelivered(ctx context.Context, orderID uint, at time.Time) error
	Cancel(ctx context.Context, orderID uint) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID uint) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// SavePin persists a freshly generated PIN along with the attempt-counter
// reset and the issuer.
func (r *orderRepoImpl) SavePin(ctx context.Context, order *model.Order) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"payment_pin":              order.PaymentPin,
			"payment_pin_generated_at": order.PaymentPinGeneratedAt,
			"payment_pin_expires_at":   order.PaymentPinExpiresAt,
			"payment_attempts":         0,
			"last_payment_attempt":     nil,
			"payment_verified_by":      order.PaymentVerifiedBy,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) RecordFailedAttempt(ctx context.Context, orderID uint, attempts int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_attempts":     attempts,
			"last_payment_attempt": at,
		}).Error
}

// ConfirmPayment flips the payment flag, moves the order to PROCESSING and
// scrubs the PIN fields in one update.
func (r *orderRepoImpl) ConfirmPayment(ctx context.Context, orderID uint, verifiedBy string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status":       true,
			"payment_confirmed_at": at,
			"payment_verified_by":  verifiedBy,
			"status":               model.OrderStatusProcessing,
			"payment_pin":          "",
			"payment_attempts":     0,
			"last_payment_attempt": nil,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) ResetPin(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_pin":              "",
			"payment_pin_generated_at": nil,
			"payment_pin_expires_at":   nil,
			"payment_attempts":         0,
			"last_payment_attempt":     nil,
		}).Error
}

// PinInUse reports whether a different order currently holds the given PIN
// with an expiry still in the future.
func (r *orderRepoImpl) PinInUse(ctx context.Context, pin string, excludeOrderID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_pin = ?", pin).
		Where("id <> ?", excludeOrderID).
		Where("payment_pin_expires_at > ?", now).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) MarkShipped(ctx context.Context, orderID uint, at time.Time) error {
	return r.transition(ctx, orderID,
		[]string{model.OrderStatusProcessing},
		map[string]interface{}{"status": model.OrderStatusShipped, "shipped_at": at})
}

func (r *orderRepoImpl) MarkDelivered(ctx context.Context, orderID uint, at time.Time) error {
	return r.transition(ctx, orderID,
		[]string{model.OrderStatusShipped},
		map[string]interface{}{"status": model.OrderStatusDelivered, "delivered_at": at})
}

func (r *orderRepoImpl) Cancel(ctx context.Context, orderID uint) error {
	return r.transition(ctx, orderID,
		[]string{model.OrderStatusPending, model.OrderStatusProcessing},
		map[string]interface{}{"status": model.OrderStatusCancelled})
}

// transition applies a status change guarded by the allowed prior statuses;
// no matching row means the order is missing or in the wrong state.
func (r *orderRepoImpl) transition(ctx context.Context, orderID uint, from []string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where(`
			id = ?
			AND status IN ?
		`,
			orderID,
			from,
		).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
