package model

type OrderStatus string

const (
	OrderStatusNew         OrderStatus = "new"
	OrderStatusPaid        OrderStatus = "paid"
	OrderStatusProcessed   OrderStatus = "processed"
	OrderStatusReadyPickup OrderStatus = "ready_pickup"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
)

type PriceAdjustmentStatus string

const (
	PriceAdjustmentNone      PriceAdjustmentStatus = "none"
	PriceAdjustmentOverpaid  PriceAdjustmentStatus = "overpaid"
	PriceAdjustmentUnderpaid PriceAdjustmentStatus = "underpaid"
)

type AdjustmentResolution string

const (
	ResolutionPaid     AdjustmentResolution = "paid"
	ResolutionRefunded AdjustmentResolution = "refunded"
	ResolutionIgnored  AdjustmentResolution = "ignored"
)

func (r AdjustmentResolution) Valid() bool {
	switch r {
	case ResolutionPaid, ResolutionRefunded, ResolutionIgnored:
		return true
	}
	return false
}

type CouponType string

const (
	CouponTypeFixed   CouponType = "fixed"
	CouponTypePercent CouponType = "percent"
)

type EditAction string

const (
	ActionUpdateInfo          EditAction = "update_info"
	ActionAddItem             EditAction = "add_item"
	ActionRemoveItem          EditAction = "remove_item"
	ActionUpdateItem          EditAction = "update_item"
	ActionUpdateStatus        EditAction = "update_status"
	ActionRecalculateDiscount EditAction = "recalculate_discount"
	ActionAdjustmentResolved  EditAction = "adjustment_resolved"
)

// VariantDimension names the axis a variant varies along.
type VariantDimension string

const (
	DimensionSize     VariantDimension = "size"
	DimensionColor    VariantDimension = "color"
	DimensionMaterial VariantDimension = "material"
	DimensionStyle    VariantDimension = "style"
)

func (d VariantDimension) Valid() bool {
	switch d {
	case DimensionSize, DimensionColor, DimensionMaterial, DimensionStyle:
		return true
	}
	return false
}
