package service

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	GetCart(ctx context.Context, userID uint) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uint) (*model.Cart, error)
	Clear(ctx context.Context, userID uint) error
}

type cartServiceImpl struct {
	db       *gorm.DB
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(db *gorm.DB, carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartServiceImpl{
		db:       db,
		carts:    carts,
		products: products,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID uint) (*model.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem adds quantity to an existing line, or starts one. The requested
// total for the line may not exceed available stock.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error) {
	product, err := s.loadActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	existing := 0
	for _, item := range cart.Items {
		if item.ProductID == productID {
			existing = item.Quantity
			break
		}
	}
	if existing+quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	if err := s.carts.UpsertItem(ctx, &model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	return s.carts.GetOrCreate(ctx, userID)
}

// UpdateItem overrides the line quantity.
func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID, productID uint, quantity int) (*model.Cart, error) {
	product, err := s.loadActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := s.carts.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	return s.carts.GetOrCreate(ctx, userID)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID uint) (*model.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}

	return s.carts.GetOrCreate(ctx, userID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID uint) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	return s.carts.Clear(ctx, s.db, cart.ID)
}

func (s *cartServiceImpl) loadActiveProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}
