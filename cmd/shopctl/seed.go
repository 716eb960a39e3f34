package main

import (
	"fmt"
	"time"

	"clothing-shop-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo catalog data",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}

		categories := []model.Category{
			{Name: "T-Shirts", Slug: "t-shirts", Description: "Everyday tees", IsActive: true},
			{Name: "Jeans", Slug: "jeans", Description: "Denim in every cut", IsActive: true},
			{Name: "Jackets", Slug: "jackets", Description: "Outerwear", IsActive: true},
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}

		discounted := decimal.NewFromFloat(14.99)
		products := []model.Product{
			{Name: "Classic White Tee", Slug: "classic-white-tee", Description: "Plain white cotton t-shirt", CategoryID: categories[0].ID,
				Price: decimal.NewFromFloat(19.99), DiscountPrice: &discounted, Size: "M", Color: "WHITE", Sku: "TEE-WHT-M", Stock: 100, IsActive: true, IsFeatured: true},
			{Name: "Slim Fit Jeans", Slug: "slim-fit-jeans", Description: "Stretch denim, slim cut", CategoryID: categories[1].ID,
				Price: decimal.NewFromFloat(49.99), Size: "L", Color: "NAVY", Sku: "JNS-NVY-L", Stock: 50, IsActive: true},
			{Name: "Rain Jacket", Slug: "rain-jacket", Description: "Waterproof shell jacket", CategoryID: categories[2].ID,
				Price: decimal.NewFromFloat(89.99), Size: "XL", Color: "BLACK", Sku: "JKT-BLK-XL", Stock: 25, IsActive: true, IsFeatured: true},
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}

		minOrder := decimal.NewFromFloat(50.00)
		maxDiscount := decimal.NewFromFloat(20.00)
		coupons := []model.Coupon{
			{Code: "WELCOME10", Description: "10% off your first order", DiscountType: model.DiscountTypePercent,
				DiscountValue: decimal.NewFromInt(10), MinOrderAmount: &minOrder, MaxDiscount: &maxDiscount,
				ValidFrom: time.Now(), ValidTo: time.Now().AddDate(1, 0, 0), IsActive: true},
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&coupons).Error; err != nil {
			return fmt.Errorf("seed coupons: %w", err)
		}

		fmt.Println("demo data seeded")
		return nil
	},
}
