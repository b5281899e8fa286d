package repository

import (
	"context"
	"storefront-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, tx *gorm.DB, code string, lock bool) (*model.Coupon, error)
	FindByID(ctx context.Context, tx *gorm.DB, couponID uint) (*model.Coupon, error)
	// CountUsage counts orders holding the coupon that were not cancelled.
	CountUsage(ctx context.Context, tx *gorm.DB, couponID uint) (int64, error)
	// CountUsageByUser narrows CountUsage to orders placed with the given phone.
	CountUsageByUser(ctx context.Context, tx *gorm.DB, couponID uint, userIdentifier string) (int64, error)
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{
		db: db,
	}
}

func (r *couponRepoImpl) FindByCode(ctx context.Context, tx *gorm.DB, code string, lock bool) (*model.Coupon, error) {
	query := tx.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var coupon model.Coupon
	err := query.
		Where("code = ?", code).
		First(&coupon).Error

	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, couponID uint) (*model.Coupon, error) {
	var coupon model.Coupon
	err := tx.WithContext(ctx).
		Where("id = ?", couponID).
		First(&coupon).Error

	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) CountUsage(ctx context.Context, tx *gorm.DB, couponID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Order{}).
		Where("coupon_id = ?", couponID).
		Where("status <> ?", model.OrderStatusCancelled).
		Count(&count).Error

	return count, err
}

func (r *couponRepoImpl) CountUsageByUser(ctx context.Context, tx *gorm.DB, couponID uint, userIdentifier string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Order{}).
		Where("coupon_id = ?", couponID).
		Where("checkout_phone = ?", userIdentifier).
		Where("status <> ?", model.OrderStatusCancelled).
		Count(&count).Error

	return count, err
}
