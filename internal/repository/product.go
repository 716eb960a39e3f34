package repository

import (
	"context"

	"clothing-shop-api/internal/model"

	"gorm.io/gorm"
)

// ProductFilter narrows and orders product listings.
type ProductFilter struct {
	CategorySlug string
	Query        string
	MinPrice     *float64
	MaxPrice     *float64
	Sort         string // name, price_low, price_high, newest
	FeaturedOnly bool
}

type ProductRepository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindMany(ctx context.Context, ids []uint) ([]*model.Product, error)
	List(ctx context.Context, filter *ProductFilter) ([]*model.Product, error)
	Related(ctx context.Context, product *model.Product, limit int) ([]*model.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, ids []uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter *ProductFilter) ([]*model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).
		Preload("Category").
		Preload("Images").
		Where("products.is_active = ?", true)

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}

	switch filter.Sort {
	case "price_low":
		query = query.Order("products.price")
	case "price_high":
		query = query.Order("products.price DESC")
	case "newest":
		query = query.Order("products.created_at DESC")
	default:
		query = query.Order("products.name")
	}

	var products []*model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Related(ctx context.Context, product *model.Product, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ? AND id <> ?", product.CategoryID, true, product.ID).
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

// DecrementStock takes stock atomically; no row is affected when stock is
// insufficient.
func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
