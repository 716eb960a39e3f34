package repository

import (
	"context"

	"clothing-shop-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*model.Cart, error)
	UpsertItem(ctx context.Context, item *model.CartItem) error
	SetItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID uint) error
	Clear(ctx context.Context, tx *gorm.DB, cartID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) GetOrCreate(ctx context.Context, userID uint) (*model.Cart, error) {
	cart := model.Cart{UserID: userID}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Clauses(clause.OnConflict{DoNothing: true}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at")
		}).
		Preload("Items.Product").
		First(&cart, cart.ID).Error
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

// UpsertItem adds to the quantity of an existing line or inserts a new one.
func (r *cartRepoImpl) UpsertItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", item.Quantity)}),
		}).
		Create(item).Error
}

func (r *cartRepoImpl) SetItemQuantity(ctx context.Context, cartID, productID uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepoImpl) RemoveItem(ctx context.Context, cartID, productID uint) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, cartID uint) error {
	return tx.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
