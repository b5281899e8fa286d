package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        *uint         `gorm:"index" json:"user_id"`
	CheckoutName  string        `gorm:"size:120;not null" json:"checkout_name"`
	CheckoutPhone string        `gorm:"size:32;index" json:"checkout_phone"`
	Qobilah       string        `gorm:"size:120" json:"qobilah"`
	PaymentMethod PaymentMethod `gorm:"size:16;not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"size:32;index;not null" json:"status"`

	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"discount_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"grand_total"`

	CouponID   *uint   `gorm:"index" json:"coupon_id"`
	CouponCode *string `gorm:"size:64" json:"coupon_code"`
	Coupon     *Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`

	PriceAdjustmentStatus PriceAdjustmentStatus `gorm:"size:16;not null;default:'none'" json:"price_adjustment_status"`
	PriceAdjustmentAmount decimal.Decimal       `gorm:"type:decimal(15,2);not null;default:0" json:"price_adjustment_amount"`

	LastEditedAt *time.Time `json:"last_edited_at"`
	LastEditedBy *uint      `json:"last_edited_by"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"index;not null" json:"order_id"`
	ProductID        uint            `gorm:"index;not null" json:"product_id"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SkuCode          *string         `gorm:"size:64" json:"sku_code"`
	RecipientName    string          `gorm:"size:120" json:"recipient_name"`
	UnitPriceAtOrder decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"unit_price_at_order"`
	Quantity         int             `gorm:"not null" json:"quantity"`

	Variants []OrderItemVariant `gorm:"foreignKey:OrderItemID" json:"variants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is the line total at the price captured when the item was added.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *OrderItem) VariantIDs() []uint {
	ids := make([]uint, len(i.Variants))
	for n, v := range i.Variants {
		ids[n] = v.ProductVariantID
	}
	return ids
}

func (i *OrderItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}

// OrderItemVariant snapshots the variant price adjustment at attach time.
type OrderItemVariant struct {
	ID               uint            `gorm:"primaryKey" json:"-"`
	OrderItemID      uint            `gorm:"index;not null" json:"-"`
	ProductVariantID uint            `gorm:"index;not null" json:"product_variant_id"`
	Variant          *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"variant,omitempty"`
	PriceAtOrder     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"price_at_order"`
}

// OrderEditLog is written once and never updated.
type OrderEditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"index;not null" json:"order_id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    EditAction     `gorm:"size:32;not null" json:"action"`
	FieldName *string        `gorm:"size:64" json:"field_name"`
	OldValue  *string        `gorm:"type:text" json:"old_value"`
	NewValue  *string        `gorm:"type:text" json:"new_value"`
	Metadata  map[string]any `gorm:"type:text;serializer:json" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// Editor identifies who performs an order mutation.
type Editor struct {
	ID   uint
	Name string
}

func (e Editor) UserID() *uint {
	if e.ID == 0 {
		return nil
	}
	id := e.ID
	return &id
}
