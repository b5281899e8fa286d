package repository

import (
	"context"
	"storefront-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository is the SKU store. Stock mutations must run inside the
// caller's transaction after the row has been read with lock set.
type InventoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, sku *model.ProductSku) error
	// FindByVariants returns the unit whose variant set equals variantIDs, or
	// nil when the product has no such unit.
	FindByVariants(ctx context.Context, tx *gorm.DB, productID uint, variantIDs []uint, lock bool) (*model.ProductSku, error)
	AdjustStock(ctx context.Context, tx *gorm.DB, skuID uint, delta int) error
	ListByProduct(ctx context.Context, productID uint) ([]*model.ProductSku, error)
}

type inventoryRepoImpl struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepoImpl{
		db: db,
	}
}

func (r *inventoryRepoImpl) Create(ctx context.Context, tx *gorm.DB, sku *model.ProductSku) error {
	return tx.WithContext(ctx).Create(sku).Error
}

func (r *inventoryRepoImpl) FindByVariants(ctx context.Context, tx *gorm.DB, productID uint, variantIDs []uint, lock bool) (*model.ProductSku, error) {
	query := tx.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var skus []*model.ProductSku
	err := query.
		Where("product_id = ? AND variant_key = ?", productID, model.VariantKey(variantIDs)).
		Limit(1).
		Find(&skus).Error
	if err != nil {
		return nil, err
	}
	if len(skus) == 0 {
		return nil, nil
	}

	return skus[0], nil
}

func (r *inventoryRepoImpl) AdjustStock(ctx context.Context, tx *gorm.DB, skuID uint, delta int) error {
	if delta == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&model.ProductSku{}).
		Where("id = ?", skuID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *inventoryRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.ProductSku, error) {
	var skus []*model.ProductSku

	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("variant_key").
		Find(&skus).Error
	if err != nil {
		return nil, err
	}

	return skus, nil
}
