package service

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	AddReview(ctx context.Context, productID, userID uint, req *dto.ReviewRequest) (*model.Review, error)
}

type reviewServiceImpl struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) ReviewService {
	return &reviewServiceImpl{
		reviews:  reviews,
		products: products,
	}
}

// AddReview stores one review per user per product; it lands unapproved and
// stays hidden from listings until staff approval.
func (s *reviewServiceImpl) AddReview(ctx context.Context, productID, userID uint, req *dto.ReviewRequest) (*model.Review, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	if _, err := s.reviews.FindByProductAndUser(ctx, productID, userID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}
