package repository

import (
	"context"
	"fmt"
	"storefront-backoffice/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	// FindVariants loads the given variants of a product. Every id must belong
	// to the product, otherwise gorm.ErrRecordNotFound is returned.
	FindVariants(ctx context.Context, tx *gorm.DB, productID uint, variantIDs []uint) ([]*model.ProductVariant, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindVariants(ctx context.Context, tx *gorm.DB, productID uint, variantIDs []uint) ([]*model.ProductVariant, error) {
	ids := model.NormalizeVariantIDs(variantIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	var variants []*model.ProductVariant
	err := tx.WithContext(ctx).
		Where("product_id = ? AND id IN ?", productID, ids).
		Order("id").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	if len(variants) != len(ids) {
		return nil, fmt.Errorf("variants %v of product %d: %w", ids, productID, gorm.ErrRecordNotFound)
	}

	return variants, nil
}
