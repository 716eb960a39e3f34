package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

// PaymentService owns the payment PIN workflow: issuance, verification with
// attempt throttling, and the payment confirmation that moves an order to
// PROCESSING. Expected outcomes (wrong PIN, lockout, expiry) come back as a
// (bool, message) pair; only persistence faults surface as errors.
type PaymentService interface {
	GeneratePin(ctx context.Context, orderID uint, issuer string) (string, error)
	VerifyPin(ctx context.Context, orderID uint, candidate string) (bool, string, error)
	ConfirmPinAndPayment(ctx context.Context, orderID uint, candidate, issuer string) (bool, string, error)
	ConfirmPayment(ctx context.Context, orderID uint, issuer string) (bool, string, error)
	ResetPin(ctx context.Context, orderID uint) error
	PinStatus(ctx context.Context, orderID uint) (*dto.PaymentStatusResponse, error)
}

type paymentServiceImpl struct {
	orders repository.OrderRepository
	locks  orderLocker

	// injected for tests
	now    func() time.Time
	newPin func() string
}

func NewPaymentService(orders repository.OrderRepository) PaymentService {
	return &paymentServiceImpl{
		orders: orders,
		now:    time.Now,
		newPin: randomPin,
	}
}

func randomPin() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// GeneratePin issues a fresh 6-digit PIN valid for 24 hours, redrawing while
// another order holds the same unexpired value. The cleartext PIN is
// returned here and nowhere else.
func (s *paymentServiceImpl) GeneratePin(ctx context.Context, orderID uint, issuer string) (string, error) {
	unlock := s.locks.lock(orderID)
	defer unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	now := s.now()
	pin := s.newPin()
	for {
		inUse, err := s.orders.PinInUse(ctx, pin, order.ID, now)
		if err != nil {
			return "", fmt.Errorf("check pin uniqueness: %w", err)
		}
		if !inUse {
			break
		}
		pin = s.newPin()
	}

	expiresAt := now.Add(model.PinValidity)
	order.PaymentPin = pin
	order.PaymentPinGeneratedAt = &now
	order.PaymentPinExpiresAt = &expiresAt
	order.PaymentAttempts = 0
	order.LastPaymentAttempt = nil
	order.PaymentVerifiedBy = issuer

	if err := s.orders.SavePin(ctx, order); err != nil {
		return "", fmt.Errorf("save pin: %w", err)
	}

	return pin, nil
}

// VerifyPin checks a candidate against the stored PIN, counting the attempt
// on mismatch.
func (s *paymentServiceImpl) VerifyPin(ctx context.Context, orderID uint, candidate string) (bool, string, error) {
	unlock := s.locks.lock(orderID)
	defer unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return false, "", err
	}

	return s.verify(ctx, order, candidate, true)
}

// verify runs the ordered checks, short-circuiting at the first failure.
// A successful match performs no mutation; confirmation is a separate step.
func (s *paymentServiceImpl) verify(ctx context.Context, order *model.Order, candidate string, incrementOnFailure bool) (bool, string, error) {
	now := s.now()

	if order.PaymentStatus {
		return false, "Payment has already been confirmed for this order.", nil
	}
	if order.PaymentPin == "" {
		return false, "No payment PIN has been generated for this order. Please contact support.", nil
	}
	if !order.IsPaymentPinValid(now) {
		return false, "The payment PIN has expired. Please contact support for a new one.", nil
	}
	if order.IsLockedOut(now) {
		return false, "Too many failed attempts. Please wait 5 minutes before trying again.", nil
	}

	if strings.TrimSpace(candidate) != order.PaymentPin {
		if incrementOnFailure {
			order.PaymentAttempts++
			order.LastPaymentAttempt = &now
			if err := s.orders.RecordFailedAttempt(ctx, order.ID, order.PaymentAttempts, now); err != nil {
				return false, "", fmt.Errorf("record failed attempt: %w", err)
			}
		}
		if order.PaymentAttempts >= model.MaxPinAttempts {
			return false, "Too many failed attempts. Please wait 5 minutes before trying again.", nil
		}
		return false, fmt.Sprintf("Incorrect PIN. %d attempt(s) remaining.", order.AttemptsRemaining()), nil
	}

	return true, "PIN verified.", nil
}

// ConfirmPinAndPayment verifies the candidate and, on success, confirms the
// payment in the same serialized section.
func (s *paymentServiceImpl) ConfirmPinAndPayment(ctx context.Context, orderID uint, candidate, issuer string) (bool, string, error) {
	unlock := s.locks.lock(orderID)
	defer unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return false, "", err
	}

	ok, message, err := s.verify(ctx, order, candidate, true)
	if err != nil || !ok {
		return ok, message, err
	}

	return s.confirm(ctx, orderID, issuer)
}

// ConfirmPayment is the unconditional force-confirm path: no PIN check, so
// staff can confirm a payment taken out of band. Access control belongs to
// the caller.
func (s *paymentServiceImpl) ConfirmPayment(ctx context.Context, orderID uint, issuer string) (bool, string, error) {
	unlock := s.locks.lock(orderID)
	defer unlock()

	return s.confirm(ctx, orderID, issuer)
}

func (s *paymentServiceImpl) confirm(ctx context.Context, orderID uint, issuer string) (bool, string, error) {
	if err := s.orders.ConfirmPayment(ctx, orderID, issuer, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", ErrOrderNotFound
		}
		return false, "", fmt.Errorf("confirm payment: %w", err)
	}
	return true, "Payment confirmed. Your order is now being processed.", nil
}

func (s *paymentServiceImpl) ResetPin(ctx context.Context, orderID uint) error {
	unlock := s.locks.lock(orderID)
	defer unlock()

	if err := s.orders.ResetPin(ctx, orderID); err != nil {
		return fmt.Errorf("reset pin: %w", err)
	}
	return nil
}

func (s *paymentServiceImpl) PinStatus(ctx context.Context, orderID uint) (*dto.PaymentStatusResponse, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &dto.PaymentStatusResponse{
		PaymentStatus:     order.PaymentStatus,
		PinValid:          order.IsPaymentPinValid(now),
		ExpiresIn:         order.PinExpiresIn(now),
		AttemptsRemaining: order.AttemptsRemaining(),
		CanGenerateNewPin: order.CanGenerateNewPin(now),
	}, nil
}

func (s *paymentServiceImpl) loadOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

// orderLocker serializes PIN state changes per order so two concurrent
// verifications cannot both read the same attempt counter.
type orderLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (l *orderLocker) lock(orderID uint) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uint]*sync.Mutex)
	}
	m, ok := l.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[orderID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
