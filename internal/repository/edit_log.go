package repository

import (
	"context"
	"storefront-backoffice/internal/model"

	"gorm.io/gorm"
)

// EditLogRepository is append-only: there is no update or delete.
type EditLogRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entries ...*model.OrderEditLog) error
	ListByOrder(ctx context.Context, orderID uint) ([]*model.OrderEditLog, error)
}

type editLogRepoImpl struct {
	db *gorm.DB
}

func NewEditLogRepository(db *gorm.DB) EditLogRepository {
	return &editLogRepoImpl{
		db: db,
	}
}

func (r *editLogRepoImpl) Append(ctx context.Context, tx *gorm.DB, entries ...*model.OrderEditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Omit("User").Create(&entries).Error
}

func (r *editLogRepoImpl) ListByOrder(ctx context.Context, orderID uint) ([]*model.OrderEditLog, error) {
	var entries []*model.OrderEditLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("order_id = ?", orderID).
		Order("created_at, id").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}
