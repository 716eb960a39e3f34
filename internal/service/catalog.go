package service

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

// ProductDetail bundles everything the product page needs.
type ProductDetail struct {
	Product       *model.Product
	Related       []*model.Product
	Reviews       []*model.Review
	AverageRating float64
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter *repository.ProductFilter) ([]*model.Product, error)
	GetProduct(ctx context.Context, slug string) (*ProductDetail, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type catalogServiceImpl struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
) CatalogService {
	return &catalogServiceImpl{
		products:   products,
		categories: categories,
		reviews:    reviews,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter *repository.ProductFilter) ([]*model.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	related, err := s.products.Related(ctx, product, 4)
	if err != nil {
		return nil, fmt.Errorf("load related products: %w", err)
	}

	reviews, err := s.reviews.ListApproved(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	avg, err := s.reviews.AverageRating(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load average rating: %w", err)
	}

	return &ProductDetail{
		Product:       product,
		Related:       related,
		Reviews:       reviews,
		AverageRating: avg,
	}, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.ListActive(ctx)
}
