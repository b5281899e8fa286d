package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-backoffice/internal/model"
	"storefront-backoffice/internal/repository"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CouponService interface {
	// Validate checks the coupon rules against a cart total. With
	// lockForUpdate the coupon row stays locked until tx ends, which keeps two
	// checkouts from spending the last use of a coupon. A nil tx reads outside
	// any transaction.
	Validate(ctx context.Context, tx *gorm.DB, code string, cartTotal decimal.Decimal, userIdentifier string, lockForUpdate bool) (*model.Coupon, error)
	Calculate(coupon *model.Coupon, cartTotal decimal.Decimal) decimal.Decimal
	Apply(ctx context.Context, code string, cartTotal decimal.Decimal, userIdentifier string) (*CouponQuote, error)
}

type CouponQuote struct {
	Coupon         *model.Coupon
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal
}

type couponServiceImpl struct {
	db         *gorm.DB
	couponRepo repository.CouponRepository
	now        func() time.Time
}

func NewCouponService(db *gorm.DB, couponRepo repository.CouponRepository) CouponService {
	return &couponServiceImpl{
		db:         db,
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

func (s *couponServiceImpl) Validate(ctx context.Context, tx *gorm.DB, code string, cartTotal decimal.Decimal, userIdentifier string, lockForUpdate bool) (*model.Coupon, error) {
	if tx == nil {
		tx = s.db
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, newCouponError(CouponErrorEmptyCode, "Kode kupon wajib diisi")
	}

	coupon, err := s.couponRepo.FindByCode(ctx, tx, code, lockForUpdate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newCouponError(CouponErrorNotFound, "Kode kupon tidak ditemukan")
		}
		return nil, fmt.Errorf("find coupon: %w", err)
	}

	if !coupon.IsActive {
		return nil, newCouponError(CouponErrorInactive, "Kupon tidak aktif")
	}

	now := s.now()
	if coupon.StartDate != nil && now.Before(*coupon.StartDate) {
		return nil, newCouponError(CouponErrorNotYetValid, "Kupon belum berlaku")
	}
	if coupon.EndDate != nil && now.After(*coupon.EndDate) {
		return nil, newCouponError(CouponErrorExpired, "Kupon sudah kedaluwarsa")
	}

	if coupon.MinPurchase.Valid && cartTotal.LessThan(coupon.MinPurchase.Decimal) {
		return nil, newCouponError(CouponErrorBelowMinimum,
			"Minimal pembelian untuk kupon ini adalah %s", formatRupiah(coupon.MinPurchase.Decimal))
	}

	if coupon.UsageLimit != nil {
		used, err := s.couponRepo.CountUsage(ctx, tx, coupon.ID)
		if err != nil {
			return nil, fmt.Errorf("count coupon usage: %w", err)
		}
		if used >= int64(*coupon.UsageLimit) {
			return nil, newCouponError(CouponErrorQuotaExhausted, "Kuota kupon sudah habis")
		}
	}

	userIdentifier = strings.TrimSpace(userIdentifier)
	if coupon.UsageLimitPerUser > 0 && userIdentifier != "" {
		used, err := s.couponRepo.CountUsageByUser(ctx, tx, coupon.ID, userIdentifier)
		if err != nil {
			return nil, fmt.Errorf("count coupon usage by user: %w", err)
		}
		if used >= int64(coupon.UsageLimitPerUser) {
			return nil, newCouponError(CouponErrorAlreadyUsedUser, "Anda sudah menggunakan kupon ini")
		}
	}

	return coupon, nil
}

// Calculate never returns a negative amount nor one above cartTotal.
func (s *couponServiceImpl) Calculate(coupon *model.Coupon, cartTotal decimal.Decimal) decimal.Decimal {
	if coupon == nil || !cartTotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case model.CouponTypeFixed:
		discount = coupon.Value
	case model.CouponTypePercent:
		discount = cartTotal.Mul(coupon.Value).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscountAmount.Valid && coupon.MaxDiscountAmount.Decimal.IsPositive() {
			discount = decimal.Min(discount, coupon.MaxDiscountAmount.Decimal)
		}
	default:
		return decimal.Zero
	}

	discount = decimal.Min(discount, cartTotal)
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

func (s *couponServiceImpl) Apply(ctx context.Context, code string, cartTotal decimal.Decimal, userIdentifier string) (*CouponQuote, error) {
	coupon, err := s.Validate(ctx, nil, code, cartTotal, userIdentifier, false)
	if err != nil {
		return nil, err
	}

	discount := s.Calculate(coupon, cartTotal)
	return &CouponQuote{
		Coupon:         coupon,
		DiscountAmount: discount,
		GrandTotal:     cartTotal.Sub(discount),
	}, nil
}
