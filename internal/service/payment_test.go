package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testEpoch = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&model.User{}, &model.Category{}, &model.Product{}, &model.ProductImage{},
		&model.Review{}, &model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.Coupon{}, &model.WishlistItem{},
	))
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Product{}, &model.ProductImage{},
		&model.Review{}, &model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.Coupon{}, &model.WishlistItem{},
	))

	return db
}

// newPaymentFixture wires a payment service against a fresh DB with a
// controllable clock and PIN source.
func newPaymentFixture(t *testing.T) (*paymentServiceImpl, *gorm.DB, *time.Time) {
	t.Helper()

	db := setupTestDB(t)
	current := testEpoch
	svc := &paymentServiceImpl{
		orders: repository.NewOrderRepository(db),
		now:    func() time.Time { return current },
		newPin: randomPin,
	}
	return svc, db, &current
}

func createTestOrder(t *testing.T, db *gorm.DB) *model.Order {
	t.Helper()

	order := &model.Order{
		OrderNumber:     "ORD-20250601-AAAA0001",
		UserID:          1,
		ShippingAddress: "1 Main St",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingCountry: "USA",
		Status:          model.OrderStatusPending,
		PaymentMethod:   model.PaymentMethodCOD,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func reload(t *testing.T, db *gorm.DB, id uint) *model.Order {
	t.Helper()

	var order model.Order
	require.NoError(t, db.First(&order, id).Error)
	return &order
}

func TestGeneratePin(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	pin, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), pin)

	saved := reload(t, db, order.ID)
	assert.Equal(t, pin, saved.PaymentPin)
	require.NotNil(t, saved.PaymentPinGeneratedAt)
	require.NotNil(t, saved.PaymentPinExpiresAt)
	assert.WithinDuration(t, saved.PaymentPinGeneratedAt.Add(24*time.Hour), *saved.PaymentPinExpiresAt, time.Second)
	assert.Equal(t, 0, saved.PaymentAttempts)
	assert.Nil(t, saved.LastPaymentAttempt)
	assert.Equal(t, "admin", saved.PaymentVerifiedBy)
	assert.False(t, saved.PaymentStatus)
}

func TestGeneratePin_RedrawsOnCollision(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)

	// another order already holds 111111, unexpired
	other := createTestOrder(t, db)
	svc.newPin = func() string { return "111111" }
	_, err := svc.GeneratePin(context.Background(), other.ID, "admin")
	require.NoError(t, err)

	order := &model.Order{
		OrderNumber:     "ORD-20250601-AAAA0002",
		UserID:          2,
		ShippingAddress: "2 Main St",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingCountry: "USA",
		Status:          model.OrderStatusPending,
		PaymentMethod:   model.PaymentMethodCOD,
	}
	require.NoError(t, db.Create(order).Error)

	pins := []string{"111111", "111111", "222222"}
	draw := 0
	svc.newPin = func() string {
		pin := pins[draw]
		draw++
		return pin
	}

	pin, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "222222", pin)
}

func TestGeneratePin_AllowsReuseOfExpiredPin(t *testing.T) {
	svc, db, clock := newPaymentFixture(t)

	other := createTestOrder(t, db)
	svc.newPin = func() string { return "333333" }
	_, err := svc.GeneratePin(context.Background(), other.ID, "admin")
	require.NoError(t, err)

	// the first order's PIN has lapsed; a new order may draw the same value
	*clock = testEpoch.Add(25 * time.Hour)

	order := &model.Order{
		OrderNumber:     "ORD-20250602-AAAA0003",
		UserID:          3,
		ShippingAddress: "3 Main St",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingCountry: "USA",
		Status:          model.OrderStatusPending,
		PaymentMethod:   model.PaymentMethodCOD,
	}
	require.NoError(t, db.Create(order).Error)

	pin, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "333333", pin)
}

func TestVerifyPin_Success(t *testing.T) {
	svc, db, clock := newPaymentFixture(t)
	order := createTestOrder(t, db)

	pin, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	*clock = testEpoch.Add(time.Hour)

	ok, message, err := svc.VerifyPin(context.Background(), order.ID, pin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "PIN verified.", message)

	// a successful verify mutates nothing
	saved := reload(t, db, order.ID)
	assert.Equal(t, 0, saved.PaymentAttempts)
	assert.Nil(t, saved.LastPaymentAttempt)
	assert.False(t, saved.PaymentStatus)
}

func TestVerifyPin_TrimsCandidate(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	pin, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	ok, _, err := svc.VerifyPin(context.Background(), order.ID, "  "+pin+" \n")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPin_WrongPinIncrementsAttempts(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	svc.newPin = func() string { return "123456" }
	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	ok, message, err := svc.VerifyPin(context.Background(), order.ID, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Incorrect PIN. 4 attempt(s) remaining.", message)

	saved := reload(t, db, order.ID)
	assert.Equal(t, 1, saved.PaymentAttempts)
	require.NotNil(t, saved.LastPaymentAttempt)
	assert.WithinDuration(t, testEpoch, *saved.LastPaymentAttempt, time.Second)
}

func TestVerifyPin_LockoutAfterFiveFailures(t *testing.T) {
	svc, db, clock := newPaymentFixture(t)
	order := createTestOrder(t, db)

	svc.newPin = func() string { return "123456" }
	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		ok, _, err := svc.VerifyPin(context.Background(), order.ID, "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// correct PIN is still refused while locked out
	ok, message, err := svc.VerifyPin(context.Background(), order.ID, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, message, "Too many failed attempts")

	saved := reload(t, db, order.ID)
	assert.Equal(t, 5, saved.PaymentAttempts)

	// the lockout self-clears 5 minutes after the last failure
	*clock = testEpoch.Add(5 * time.Minute)

	ok, message, err = svc.VerifyPin(context.Background(), order.ID, "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "PIN verified.", message)
}

func TestVerifyPin_Expired(t *testing.T) {
	svc, db, clock := newPaymentFixture(t)
	order := createTestOrder(t, db)

	svc.newPin = func() string { return "123456" }
	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	*clock = testEpoch.Add(25 * time.Hour)

	ok, message, err := svc.VerifyPin(context.Background(), order.ID, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, message, "expired")

	// expiry is checked before the attempt counter, so nothing is recorded
	saved := reload(t, db, order.ID)
	assert.Equal(t, 0, saved.PaymentAttempts)
}

func TestVerifyPin_NoPinGenerated(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	ok, message, err := svc.VerifyPin(context.Background(), order.ID, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, message, "No payment PIN")
}

func TestVerifyPin_AlreadyConfirmed(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	_, _, err := svc.ConfirmPayment(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	ok, message, err := svc.VerifyPin(context.Background(), order.ID, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, message, "already been confirmed")
}

func TestConfirmPayment_ScrubsPinAndMovesToProcessing(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	_, _, err = svc.VerifyPin(context.Background(), order.ID, "wrong!")
	require.NoError(t, err)

	ok, _, err := svc.ConfirmPayment(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	assert.True(t, ok)

	saved := reload(t, db, order.ID)
	assert.True(t, saved.PaymentStatus)
	assert.Equal(t, model.OrderStatusProcessing, saved.Status)
	assert.Equal(t, "", saved.PaymentPin)
	assert.Equal(t, 0, saved.PaymentAttempts)
	assert.Nil(t, saved.LastPaymentAttempt)
	require.NotNil(t, saved.PaymentConfirmedAt)
	assert.Equal(t, "admin", saved.PaymentVerifiedBy)
}

func TestConfirmPinAndPayment(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	svc.newPin = func() string { return "123456" }
	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	ok, message, err := svc.ConfirmPinAndPayment(context.Background(), order.ID, "999999", "customer")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, message, "Incorrect PIN")
	assert.False(t, reload(t, db, order.ID).PaymentStatus)

	ok, _, err = svc.ConfirmPinAndPayment(context.Background(), order.ID, "123456", "customer")
	require.NoError(t, err)
	assert.True(t, ok)

	saved := reload(t, db, order.ID)
	assert.True(t, saved.PaymentStatus)
	assert.Equal(t, model.OrderStatusProcessing, saved.Status)
	assert.Equal(t, "customer", saved.PaymentVerifiedBy)
}

func TestResetPin(t *testing.T) {
	svc, db, _ := newPaymentFixture(t)
	order := createTestOrder(t, db)

	_, err := svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)
	_, _, err = svc.VerifyPin(context.Background(), order.ID, "wrong!")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPin(context.Background(), order.ID))

	saved := reload(t, db, order.ID)
	assert.Equal(t, "", saved.PaymentPin)
	assert.Nil(t, saved.PaymentPinGeneratedAt)
	assert.Nil(t, saved.PaymentPinExpiresAt)
	assert.Equal(t, 0, saved.PaymentAttempts)
	assert.Nil(t, saved.LastPaymentAttempt)
}

func TestPinStatus(t *testing.T) {
	svc, db, clock := newPaymentFixture(t)
	order := createTestOrder(t, db)

	status, err := svc.PinStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, status.PinValid)
	assert.Equal(t, "Expired", status.ExpiresIn)
	assert.True(t, status.CanGenerateNewPin)
	assert.Equal(t, 5, status.AttemptsRemaining)

	_, err = svc.GeneratePin(context.Background(), order.ID, "admin")
	require.NoError(t, err)

	status, err = svc.PinStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, status.PinValid)
	assert.Equal(t, "24 hours", status.ExpiresIn)
	assert.False(t, status.CanGenerateNewPin)

	// the 1-hour cooldown lapses
	*clock = testEpoch.Add(time.Hour)
	status, err = svc.PinStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, status.PinValid)
	assert.True(t, status.CanGenerateNewPin)

	*clock = testEpoch.Add(25 * time.Hour)
	status, err = svc.PinStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, status.PinValid)
	assert.Equal(t, "Expired", status.ExpiresIn)
	assert.True(t, status.CanGenerateNewPin)
}

func TestPaymentService_OrderNotFound(t *testing.T) {
	svc, _, _ := newPaymentFixture(t)

	_, err := svc.GeneratePin(context.Background(), 9999, "admin")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, _, err = svc.VerifyPin(context.Background(), 9999, "123456")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, _, err = svc.ConfirmPayment(context.Background(), 9999, "admin")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
