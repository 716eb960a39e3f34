package service

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

type WishlistService interface {
	Toggle(ctx context.Context, userID, productID uint) (added bool, err error)
	List(ctx context.Context, userID uint) ([]*model.Product, error)
}

type wishlistServiceImpl struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewWishlistService(users repository.UserRepository, products repository.ProductRepository) WishlistService {
	return &wishlistServiceImpl{
		users:    users,
		products: products,
	}
}

func (s *wishlistServiceImpl) Toggle(ctx context.Context, userID, productID uint) (bool, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("load product: %w", err)
	}

	return s.users.ToggleWishlist(ctx, userID, productID)
}

func (s *wishlistServiceImpl) List(ctx context.Context, userID uint) ([]*model.Product, error) {
	return s.users.ListWishlist(ctx, userID)
}
