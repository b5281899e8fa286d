package repository

import (
	"context"
	"storefront-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	// FindForUpdate reads the order header and holds its row lock until tx ends.
	FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	FindWithItems(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error)
	Update(ctx context.Context, tx *gorm.DB, orderID uint, fields map[string]interface{}) error

	GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error)
	FindItem(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*model.OrderItem, error)
	FindItemByID(ctx context.Context, tx *gorm.DB, itemID uint) (*model.OrderItem, error)
	CountItems(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error)
	CreateOrderItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error
	UpdateOrderItem(ctx context.Context, tx *gorm.DB, itemID uint, fields map[string]interface{}) error
	DeleteOrderItem(ctx context.Context, tx *gorm.DB, itemID uint) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindWithItems(ctx context.Context, tx *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Preload("Coupon").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product").
		Preload("Items.Variants.Variant").
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Update writes the given columns. Callers hold the row through
// FindForUpdate, so a zero row count only means nothing changed.
func (r *orderRepoImpl) Update(ctx context.Context, tx *gorm.DB, orderID uint, fields map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields).Error
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Preload("Product").
		Preload("Variants").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) FindItem(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := tx.WithContext(ctx).
		Preload("Product").
		Preload("Variants").
		Where("id = ? AND order_id = ?", itemID, orderID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *orderRepoImpl) FindItemByID(ctx context.Context, tx *gorm.DB, itemID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := tx.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *orderRepoImpl) CountItems(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count, err
}

// CreateOrderItem inserts the item together with its variant snapshots.
func (r *orderRepoImpl) CreateOrderItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return tx.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *orderRepoImpl) UpdateOrderItem(ctx context.Context, tx *gorm.DB, itemID uint, fields map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ?", itemID).
		Updates(fields).Error
}

// DeleteOrderItem detaches the variant snapshots before removing the item.
func (r *orderRepoImpl) DeleteOrderItem(ctx context.Context, tx *gorm.DB, itemID uint) error {
	if err := tx.WithContext(ctx).
		Where("order_item_id = ?", itemID).
		Delete(&model.OrderItemVariant{}).Error; err != nil {
		return err
	}

	result := tx.WithContext(ctx).Delete(&model.OrderItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
