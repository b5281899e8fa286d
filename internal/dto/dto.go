package dto

import (
	"storefront-backoffice/internal/model"
	"time"

	"github.com/shopspring/decimal"
)

// UpdateOrderInfoRequest carries only the fields the caller wants to change.
type UpdateOrderInfoRequest struct {
	CheckoutName  *string              `json:"checkout_name" validate:"omitempty,max=120"`
	CheckoutPhone *string              `json:"checkout_phone" validate:"omitempty,max=32"`
	Qobilah       *string              `json:"qobilah" validate:"omitempty,max=120"`
	PaymentMethod *model.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=transfer cash"`
	Status        *model.OrderStatus   `json:"status" validate:"omitempty,oneof=new paid processed ready_pickup completed cancelled"`
}

type AddOrderItemRequest struct {
	ProductID     uint   `json:"product_id" validate:"required"`
	VariantIDs    []uint `json:"variant_ids"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	RecipientName string `json:"recipient_name" validate:"max=120"`
}

type UpdateOrderItemRequest struct {
	Quantity      *int    `json:"quantity" validate:"omitempty,min=1"`
	RecipientName *string `json:"recipient_name" validate:"omitempty,max=120"`
}

type ResolveAdjustmentRequest struct {
	Resolution model.AdjustmentResolution `json:"resolution" validate:"required,oneof=paid refunded ignored"`
	Reason     string                     `json:"reason" validate:"max=500"`
}

type StockCheckRequest struct {
	ProductID     uint   `json:"product_id" validate:"required"`
	VariantIDs    []uint `json:"variant_ids"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	ExcludeItemID *uint  `json:"exclude_item_id"`
}

// StockAvailability reports Stock as nil when the selection has no
// inventory unit and is treated as unlimited.
type StockAvailability struct {
	Available bool   `json:"available"`
	Stock     *int   `json:"stock"`
	Message   string `json:"message"`
}

type CouponValidateRequest struct {
	Code           string          `json:"code" validate:"required"`
	CartTotal      decimal.Decimal `json:"cart_total"`
	UserIdentifier string          `json:"user_identifier"`
}

type CouponValidateResponse struct {
	CouponID       uint             `json:"coupon_id"`
	Code           string           `json:"code"`
	Type           model.CouponType `json:"type"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	GrandTotal     decimal.Decimal  `json:"grand_total"`
}

type EditLogEntry struct {
	ID          uint             `json:"id"`
	Action      model.EditAction `json:"action"`
	FieldName   *string          `json:"field_name"`
	OldValue    *string          `json:"old_value"`
	NewValue    *string          `json:"new_value"`
	Metadata    map[string]any   `json:"metadata"`
	ActorName   string           `json:"actor_name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}
