package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const denylistPrefix = "denylist:"

type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	ParseToken(ctx context.Context, token string) (*Claims, error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*model.User, error)
}

type authServiceImpl struct {
	users  repository.UserRepository
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewAuthService(users repository.UserRepository, rdb *redis.Client, secret string, ttl time.Duration) AuthService {
	return &authServiceImpl{
		users:  users,
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.ttl)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// Logout denylists the token in redis until its natural expiry.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.ParseToken(ctx, token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, denylistPrefix+token, 1, ttl).Err()
}

// ParseToken validates the signature, expiry and the redis denylist.
func (s *authServiceImpl) ParseToken(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}

	if s.rdb != nil {
		_, err := s.rdb.Get(ctx, denylistPrefix+token).Result()
		if err == nil {
			return nil, ErrInvalidCredentials
		}
		if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("check denylist: %w", err)
		}
	}

	return claims, nil
}

func (s *authServiceImpl) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Phone, req.Phone)
	setString(&user.Address, req.Address)
	setString(&user.City, req.City)
	setString(&user.State, req.State)
	setString(&user.ZipCode, req.ZipCode)
	setString(&user.Country, req.Country)
	setString(&user.ShippingAddress, req.ShippingAddress)
	setString(&user.ShippingCity, req.ShippingCity)
	setString(&user.ShippingState, req.ShippingState)
	setString(&user.ShippingZip, req.ShippingZip)
	if req.NewsletterSubscribed != nil {
		user.NewsletterSubscribed = *req.NewsletterSubscribed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
