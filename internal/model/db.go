package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Email     string `gorm:"size:160;uniqueIndex" json:"email"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"size:200;not null" json:"name"`
	Price     decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"price"` // base price
	Variants  []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Skus      []ProductSku     `gorm:"foreignKey:ProductID" json:"skus,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ProductVariant struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ProductID       uint             `gorm:"index;not null" json:"product_id"`
	Dimension       VariantDimension `gorm:"size:32;not null" json:"dimension"`
	Name            string           `gorm:"size:120;not null" json:"name"`
	PriceAdjustment decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"price_adjustment"`
}

// ProductSku is the stock and price bucket of one variant combination.
// VariantKey is the normalised identity of the combination, see VariantKey().
type ProductSku struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	ProductID  uint                `gorm:"not null;uniqueIndex:idx_sku_product_variant" json:"product_id"`
	VariantKey string              `gorm:"size:191;not null;default:'';uniqueIndex:idx_sku_product_variant" json:"variant_key"`
	VariantIDs []uint              `gorm:"type:text;serializer:json" json:"variant_ids"`
	SkuCode    *string             `gorm:"size:64" json:"sku_code"`
	Price      decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"price"` // override when > 0
	Stock      int                 `gorm:"not null;default:0" json:"stock"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func (v *ProductVariant) BeforeSave(tx *gorm.DB) error {
	if !v.Dimension.Valid() {
		return fmt.Errorf("invalid variant dimension %q", v.Dimension)
	}
	return nil
}

// BeforeSave keeps VariantKey in step with VariantIDs.
func (s *ProductSku) BeforeSave(tx *gorm.DB) error {
	s.VariantIDs = NormalizeVariantIDs(s.VariantIDs)
	s.VariantKey = VariantKey(s.VariantIDs)
	return nil
}

// PriceOverride reports the SKU price when it supersedes the computed one.
func (s *ProductSku) PriceOverride() (decimal.Decimal, bool) {
	if s.Price.Valid && s.Price.Decimal.IsPositive() {
		return s.Price.Decimal, true
	}
	return decimal.Zero, false
}

type Coupon struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	Code              string              `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Type              CouponType          `gorm:"size:16;not null" json:"type"`
	Value             decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"value"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"max_discount_amount"`
	MinPurchase       decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"min_purchase"`
	StartDate         *time.Time          `json:"start_date"`
	EndDate           *time.Time          `json:"end_date"`
	UsageLimit        *int                `json:"usage_limit"`
	UsageLimitPerUser int                 `gorm:"not null;default:0" json:"usage_limit_per_user"`
	IsActive          bool                `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// VariantKey sorts and de-duplicates variant ids and joins them with "-".
// An empty selection yields "", the key of a product's default unit.
func VariantKey(ids []uint) string {
	normalized := NormalizeVariantIDs(ids)
	parts := make([]string, len(normalized))
	for i, id := range normalized {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, "-")
}

func NormalizeVariantIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
