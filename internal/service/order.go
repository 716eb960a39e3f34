package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	ListOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	GetOrder(ctx context.Context, orderID, userID uint) (*model.Order, error)
	Ship(ctx context.Context, orderID uint) error
	Deliver(ctx context.Context, orderID uint) error
	Cancel(ctx context.Context, orderID uint) error
}

type orderServiceImpl struct {
	orders repository.OrderRepository

	now func() time.Time
}

func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orders: orders,
		now:    time.Now,
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID, userID uint) (*model.Order, error) {
	order, err := s.orders.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) Ship(ctx context.Context, orderID uint) error {
	return s.transition(s.orders.MarkShipped, ctx, orderID)
}

func (s *orderServiceImpl) Deliver(ctx context.Context, orderID uint) error {
	return s.transition(s.orders.MarkDelivered, ctx, orderID)
}

func (s *orderServiceImpl) Cancel(ctx context.Context, orderID uint) error {
	err := s.orders.Cancel(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidTransition
	}
	return err
}

func (s *orderServiceImpl) transition(op func(context.Context, uint, time.Time) error, ctx context.Context, orderID uint) error {
	err := op(ctx, orderID, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidTransition
	}
	return err
}
