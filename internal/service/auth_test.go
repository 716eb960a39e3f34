package service

import (
	"context"
	"testing"
	"time"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *authServiceImpl {
	t.Helper()

	db := setupTestDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &authServiceImpl{
		users:  repository.NewUserRepository(db),
		rdb:    rdb,
		secret: []byte("test-secret"),
		ttl:    time.Hour,
		now:    time.Now,
	}
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)

	token, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	claims, err := svc.ParseToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsStaff)
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUsernameTaken)

	req := registerRequest()
	req.Username = "alice2"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, svc.users.Update(context.Background(), user))

	_, err = svc.Login(context.Background(), "alice", "correct horse")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogout_DenylistsToken(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token.Token))

	_, err = svc.ParseToken(context.Background(), token.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_BadSignature(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	other := newAuthFixture(t)
	other.secret = []byte("different-secret")
	_, err = other.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	token, err := other.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	first := "Alice"
	city := "Springfield"
	subscribed := true
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName:            &first,
		City:                 &city,
		NewsletterSubscribed: &subscribed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Springfield", updated.City)
	assert.True(t, updated.NewsletterSubscribed)

	// untouched fields keep their values on a second partial update
	last := "Liddell"
	updated, err = svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Liddell", updated.LastName)
}
