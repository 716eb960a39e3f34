package repository

import (
	"context"

	"clothing-shop-api/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListApproved(ctx context.Context, productID uint) ([]*model.Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID uint) (*model.Review, error)
	AverageRating(ctx context.Context, productID uint) (float64, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) ListApproved(ctx context.Context, productID uint) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) FindByProductAndUser(ctx context.Context, productID, userID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error

	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepoImpl) AverageRating(ctx context.Context, productID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Select("AVG(rating)").
		Scan(&avg).Error

	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
