package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var pinEpoch = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func orderWithPin(generatedAt time.Time) *Order {
	expiresAt := generatedAt.Add(PinValidity)
	return &Order{
		PaymentPin:            "123456",
		PaymentPinGeneratedAt: &generatedAt,
		PaymentPinExpiresAt:   &expiresAt,
	}
}

func TestIsPaymentPinValid(t *testing.T) {
	order := orderWithPin(pinEpoch)

	assert.True(t, order.IsPaymentPinValid(pinEpoch))
	assert.True(t, order.IsPaymentPinValid(pinEpoch.Add(24*time.Hour)))
	assert.False(t, order.IsPaymentPinValid(pinEpoch.Add(24*time.Hour+time.Second)))

	assert.False(t, (&Order{}).IsPaymentPinValid(pinEpoch))
}

func TestCanGenerateNewPin(t *testing.T) {
	// never generated
	assert.True(t, (&Order{}).CanGenerateNewPin(pinEpoch))

	order := orderWithPin(pinEpoch)

	// fresh PIN, inside the cooldown
	assert.False(t, order.CanGenerateNewPin(pinEpoch.Add(30*time.Minute)))

	// cooldown lapsed
	assert.True(t, order.CanGenerateNewPin(pinEpoch.Add(time.Hour)))

	// expired PIN always allows regeneration
	assert.True(t, order.CanGenerateNewPin(pinEpoch.Add(25*time.Hour)))
}

func TestPinExpiresIn(t *testing.T) {
	order := orderWithPin(pinEpoch)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"just issued", pinEpoch, "24 hours"},
		{"hours left, floored", pinEpoch.Add(90 * time.Minute), "22 hours"},
		{"under an hour", pinEpoch.Add(23*time.Hour + 15*time.Minute), "45 minutes"},
		{"minutes floored", pinEpoch.Add(23*time.Hour + 14*time.Minute + 30*time.Second), "45 minutes"},
		{"last minute", pinEpoch.Add(23*time.Hour + 59*time.Minute + 30*time.Second), "0 minutes"},
		{"lapsed", pinEpoch.Add(25 * time.Hour), "Expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.PinExpiresIn(tt.now))
		})
	}

	assert.Equal(t, "Expired", (&Order{}).PinExpiresIn(pinEpoch))
}

func TestAttemptsRemaining(t *testing.T) {
	assert.Equal(t, 5, (&Order{}).AttemptsRemaining())
	assert.Equal(t, 2, (&Order{PaymentAttempts: 3}).AttemptsRemaining())
	assert.Equal(t, 0, (&Order{PaymentAttempts: 5}).AttemptsRemaining())
	assert.Equal(t, 0, (&Order{PaymentAttempts: 7}).AttemptsRemaining())
}

func TestIsLockedOut(t *testing.T) {
	lastAttempt := pinEpoch

	order := &Order{PaymentAttempts: 5, LastPaymentAttempt: &lastAttempt}
	assert.True(t, order.IsLockedOut(pinEpoch.Add(time.Minute)))
	assert.False(t, order.IsLockedOut(pinEpoch.Add(5*time.Minute)))

	// under the attempt cap there is no lockout regardless of recency
	almost := &Order{PaymentAttempts: 4, LastPaymentAttempt: &lastAttempt}
	assert.False(t, almost.IsLockedOut(pinEpoch.Add(time.Minute)))
}
