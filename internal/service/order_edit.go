package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"storefront-backoffice/internal/dto"
	"storefront-backoffice/internal/model"
	"storefront-backoffice/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const systemActorName = "System"

// OrderEditService owns every mutation of an existing order. Each mutating
// call runs in one transaction that first locks the order row; on error
// nothing is committed.
type OrderEditService interface {
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	UpdateInfo(ctx context.Context, orderID uint, req *dto.UpdateOrderInfoRequest, editor model.Editor) (*model.Order, error)
	AddItem(ctx context.Context, orderID uint, req *dto.AddOrderItemRequest, editor model.Editor) (*model.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID uint, editor model.Editor) error
	UpdateItem(ctx context.Context, orderID, itemID uint, req *dto.UpdateOrderItemRequest, editor model.Editor) (*model.OrderItem, error)
	RecalculateTotals(ctx context.Context, orderID uint, editor model.Editor) (*model.Order, error)
	ResolveAdjustment(ctx context.Context, orderID uint, req *dto.ResolveAdjustmentRequest, editor model.Editor) (*model.Order, error)
	CheckStockAvailability(ctx context.Context, req *dto.StockCheckRequest) (*dto.StockAvailability, error)
	ListEditLogs(ctx context.Context, orderID uint) ([]*dto.EditLogEntry, error)
}

type orderEditServiceImpl struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	couponRepo    repository.CouponRepository
	editLogRepo   repository.EditLogRepository
	couponService CouponService
	log           logrus.FieldLogger
	now           func() time.Time
}

func NewOrderEditService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	couponRepo repository.CouponRepository,
	editLogRepo repository.EditLogRepository,
	couponService CouponService,
	log logrus.FieldLogger,
) OrderEditService {
	return &orderEditServiceImpl{
		db:            db,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		couponRepo:    couponRepo,
		editLogRepo:   editLogRepo,
		couponService: couponService,
		log:           log,
		now:           time.Now,
	}
}

func (s *orderEditServiceImpl) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindWithItems(ctx, s.db, orderID)
	if err != nil {
		return nil, notFound("order", err)
	}
	return order, nil
}

// infoChange is one diffed header field, keyed by its column name.
type infoChange struct {
	field    string
	oldValue string
	newValue string
}

func diffInfo(order *model.Order, req *dto.UpdateOrderInfoRequest) []infoChange {
	var changes []infoChange
	add := func(field, oldValue string, newValue *string) {
		if newValue != nil && *newValue != oldValue {
			changes = append(changes, infoChange{field: field, oldValue: oldValue, newValue: *newValue})
		}
	}

	add("checkout_name", order.CheckoutName, req.CheckoutName)
	add("checkout_phone", order.CheckoutPhone, req.CheckoutPhone)
	add("qobilah", order.Qobilah, req.Qobilah)
	if req.PaymentMethod != nil {
		pm := string(*req.PaymentMethod)
		add("payment_method", string(order.PaymentMethod), &pm)
	}
	if req.Status != nil {
		st := string(*req.Status)
		add("status", string(order.Status), &st)
	}

	return changes
}

func (s *orderEditServiceImpl) UpdateInfo(ctx context.Context, orderID uint, req *dto.UpdateOrderInfoRequest, editor model.Editor) (*model.Order, error) {
	changed := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		changes := diffInfo(order, req)
		if len(changes) == 0 {
			return nil
		}

		now := s.now()
		var entries []*model.OrderEditLog
		fields := s.editStamp(editor, now)

		for _, change := range changes {
			if change.field != "status" {
				continue
			}
			oldStatus := model.OrderStatus(change.oldValue)
			newStatus := model.OrderStatus(change.newValue)

			switch {
			case newStatus == model.OrderStatusCancelled && oldStatus != model.OrderStatusCancelled:
				restored, err := s.restoreOrderStock(ctx, tx, order, editor, now)
				if err != nil {
					return err
				}
				entries = append(entries, restored...)
			case oldStatus == model.OrderStatusCancelled && newStatus != model.OrderStatusCancelled:
				consumed, err := s.reserveOrderStock(ctx, tx, order, editor, now)
				if err != nil {
					return err
				}
				entries = append(entries, consumed...)
			}
		}

		for _, change := range changes {
			fields[change.field] = change.newValue

			action := model.ActionUpdateInfo
			if change.field == "status" {
				action = model.ActionUpdateStatus
			}
			entries = append(entries, s.newEditLog(order.ID, editor, now, action, change.field, change.oldValue, change.newValue, nil))
		}

		if err := s.orderRepo.Update(ctx, tx, order.ID, fields); err != nil {
			return fmt.Errorf("update order info: %w", err)
		}
		if err := s.editLogRepo.Append(ctx, tx, entries...); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		changed = true
		return nil
	})
	if err != nil {
		s.logFailure("update order info", orderID, editor, err)
		return nil, err
	}

	if changed {
		s.log.WithFields(logrus.Fields{"order_id": orderID, "editor_id": editor.ID}).Info("order info updated")
	}

	return s.GetOrder(ctx, orderID)
}

// restoreOrderStock returns every item's quantity to its inventory unit.
func (s *orderEditServiceImpl) restoreOrderStock(ctx context.Context, tx *gorm.DB, order *model.Order, editor model.Editor, now time.Time) ([]*model.OrderEditLog, error) {
	items, err := s.orderRepo.GetOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	var entries []*model.OrderEditLog
	for _, item := range items {
		sku, err := s.inventoryRepo.FindByVariants(ctx, tx, item.ProductID, item.VariantIDs(), true)
		if err != nil {
			return nil, fmt.Errorf("find sku: %w", err)
		}
		if sku == nil {
			continue
		}

		if err := s.inventoryRepo.AdjustStock(ctx, tx, sku.ID, item.Quantity); err != nil {
			return nil, fmt.Errorf("restore stock: %w", err)
		}

		entries = append(entries, s.newEditLog(order.ID, editor, now, model.ActionUpdateItem, "stock_restored",
			sku.Stock, sku.Stock+item.Quantity, map[string]any{
				"reason":       "order_cancelled",
				"item_id":      item.ID,
				"product_id":   item.ProductID,
				"product_name": item.ProductName(),
				"quantity":     item.Quantity,
				"sku_id":       sku.ID,
			}))
	}

	return entries, nil
}

// reserveOrderStock takes stock again for every item of a reopened order.
func (s *orderEditServiceImpl) reserveOrderStock(ctx context.Context, tx *gorm.DB, order *model.Order, editor model.Editor, now time.Time) ([]*model.OrderEditLog, error) {
	items, err := s.orderRepo.GetOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	var entries []*model.OrderEditLog
	for _, item := range items {
		sku, err := s.inventoryRepo.FindByVariants(ctx, tx, item.ProductID, item.VariantIDs(), true)
		if err != nil {
			return nil, fmt.Errorf("find sku: %w", err)
		}
		if sku == nil {
			continue
		}
		if sku.Stock < item.Quantity {
			return nil, insufficientStock("reopen order", sku.Stock)
		}

		if err := s.inventoryRepo.AdjustStock(ctx, tx, sku.ID, -item.Quantity); err != nil {
			return nil, fmt.Errorf("consume stock: %w", err)
		}

		entries = append(entries, s.newEditLog(order.ID, editor, now, model.ActionUpdateItem, "stock_consumed",
			sku.Stock, sku.Stock-item.Quantity, map[string]any{
				"reason":       "order_reopened",
				"item_id":      item.ID,
				"product_id":   item.ProductID,
				"product_name": item.ProductName(),
				"quantity":     item.Quantity,
				"sku_id":       sku.ID,
			}))
	}

	return entries, nil
}

func (s *orderEditServiceImpl) AddItem(ctx context.Context, orderID uint, req *dto.AddOrderItemRequest, editor model.Editor) (*model.OrderItem, error) {
	var itemID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		product, err := s.productRepo.FindByID(ctx, tx, req.ProductID)
		if err != nil {
			return notFound("product", err)
		}

		variantIDs := model.NormalizeVariantIDs(req.VariantIDs)
		variants, err := s.productRepo.FindVariants(ctx, tx, product.ID, variantIDs)
		if err != nil {
			return notFound("product variant", err)
		}

		price := product.Price
		snapshots := make([]model.OrderItemVariant, 0, len(variants))
		for _, variant := range variants {
			price = price.Add(variant.PriceAdjustment)
			snapshots = append(snapshots, model.OrderItemVariant{
				ProductVariantID: variant.ID,
				PriceAtOrder:     variant.PriceAdjustment,
			})
		}

		sku, err := s.inventoryRepo.FindByVariants(ctx, tx, product.ID, variantIDs, true)
		if err != nil {
			return fmt.Errorf("find sku: %w", err)
		}

		var skuCode *string
		if sku != nil {
			if holdsStock(order) {
				if sku.Stock < req.Quantity {
					return insufficientStock("add item", sku.Stock)
				}
				if err := s.inventoryRepo.AdjustStock(ctx, tx, sku.ID, -req.Quantity); err != nil {
					return fmt.Errorf("consume stock: %w", err)
				}
			}
			if override, ok := sku.PriceOverride(); ok {
				price = override
			}
			skuCode = sku.SkuCode
		} else {
			s.log.WithFields(logrus.Fields{"order_id": order.ID, "product_id": product.ID, "variant_ids": variantIDs}).
				Debug("no inventory unit for selection, stock not tracked")
		}

		item := &model.OrderItem{
			OrderID:          order.ID,
			ProductID:        product.ID,
			SkuCode:          skuCode,
			RecipientName:    req.RecipientName,
			UnitPriceAtOrder: price,
			Quantity:         req.Quantity,
			Variants:         snapshots,
		}
		if err := s.orderRepo.CreateOrderItem(ctx, tx, item); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
		itemID = item.ID

		now := s.now()
		metadata := map[string]any{
			"item_id":        item.ID,
			"product_id":     product.ID,
			"product_name":   product.Name,
			"quantity":       item.Quantity,
			"unit_price":     price.String(),
			"recipient_name": item.RecipientName,
			"variant_ids":    variantIDs,
		}

		result, err := s.recalculate(ctx, tx, order, editor, now)
		if err != nil {
			return err
		}
		result.annotate(metadata)

		entry := s.newEditLog(order.ID, editor, now, model.ActionAddItem, "", nil, nil, metadata)
		if err := s.editLogRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logFailure("add order item", orderID, editor, err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "item_id": itemID, "editor_id": editor.ID}).Info("order item added")

	item, err := s.orderRepo.FindItem(ctx, s.db, orderID, itemID)
	if err != nil {
		return nil, notFound("order item", err)
	}
	return item, nil
}

func (s *orderEditServiceImpl) RemoveItem(ctx context.Context, orderID, itemID uint, editor model.Editor) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		item, err := s.orderRepo.FindItem(ctx, tx, orderID, itemID)
		if err != nil {
			return notFound("order item", err)
		}

		count, err := s.orderRepo.CountItems(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("count order items: %w", err)
		}
		if count <= 1 {
			return newEditError("remove item", EditErrorLastItem, "Pesanan harus memiliki minimal satu item")
		}

		stockRestored := false
		if holdsStock(order) {
			sku, err := s.inventoryRepo.FindByVariants(ctx, tx, item.ProductID, item.VariantIDs(), true)
			if err != nil {
				return fmt.Errorf("find sku: %w", err)
			}
			if sku != nil {
				if err := s.inventoryRepo.AdjustStock(ctx, tx, sku.ID, item.Quantity); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
				stockRestored = true
			}
		}

		if err := s.orderRepo.DeleteOrderItem(ctx, tx, item.ID); err != nil {
			return fmt.Errorf("delete order item: %w", err)
		}

		now := s.now()
		metadata := map[string]any{
			"item_id":        item.ID,
			"product_id":     item.ProductID,
			"product_name":   item.ProductName(),
			"quantity":       item.Quantity,
			"unit_price":     item.UnitPriceAtOrder.String(),
			"recipient_name": item.RecipientName,
			"stock_restored": stockRestored,
		}

		result, err := s.recalculate(ctx, tx, order, editor, now)
		if err != nil {
			return err
		}
		result.annotate(metadata)

		entry := s.newEditLog(order.ID, editor, now, model.ActionRemoveItem, "", nil, nil, metadata)
		if err := s.editLogRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logFailure("remove order item", orderID, editor, err)
		return err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "item_id": itemID, "editor_id": editor.ID}).Info("order item removed")
	return nil
}

func (s *orderEditServiceImpl) UpdateItem(ctx context.Context, orderID, itemID uint, req *dto.UpdateOrderItemRequest, editor model.Editor) (*model.OrderItem, error) {
	changed := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		item, err := s.orderRepo.FindItem(ctx, tx, orderID, itemID)
		if err != nil {
			return notFound("order item", err)
		}

		now := s.now()
		fields := map[string]interface{}{}
		var entries []*model.OrderEditLog

		quantityChanged := req.Quantity != nil && *req.Quantity != item.Quantity
		if quantityChanged {
			newQuantity := *req.Quantity
			delta := newQuantity - item.Quantity

			stockTracked := false
			if holdsStock(order) {
				sku, err := s.inventoryRepo.FindByVariants(ctx, tx, item.ProductID, item.VariantIDs(), true)
				if err != nil {
					return fmt.Errorf("find sku: %w", err)
				}
				if sku != nil {
					if delta > 0 && sku.Stock < delta {
						return insufficientStock("update item", sku.Stock)
					}
					if err := s.inventoryRepo.AdjustStock(ctx, tx, sku.ID, -delta); err != nil {
						return fmt.Errorf("adjust stock: %w", err)
					}
					stockTracked = true
				}
			}

			fields["quantity"] = newQuantity
			entries = append(entries, s.newEditLog(order.ID, editor, now, model.ActionUpdateItem, "quantity",
				item.Quantity, newQuantity, map[string]any{
					"item_id":          item.ID,
					"product_id":       item.ProductID,
					"product_name":     item.ProductName(),
					"stock_adjustment": -delta,
					"stock_tracked":    stockTracked,
				}))
		}

		if req.RecipientName != nil && *req.RecipientName != item.RecipientName {
			fields["recipient_name"] = *req.RecipientName
			entries = append(entries, s.newEditLog(order.ID, editor, now, model.ActionUpdateItem, "recipient_name",
				item.RecipientName, *req.RecipientName, map[string]any{
					"item_id":      item.ID,
					"product_id":   item.ProductID,
					"product_name": item.ProductName(),
				}))
		}

		if len(fields) == 0 {
			return nil
		}

		if err := s.orderRepo.UpdateOrderItem(ctx, tx, item.ID, fields); err != nil {
			return fmt.Errorf("update order item: %w", err)
		}

		if quantityChanged {
			result, err := s.recalculate(ctx, tx, order, editor, now)
			if err != nil {
				return err
			}
			result.annotate(entries[0].Metadata)
		} else if err := s.orderRepo.Update(ctx, tx, order.ID, s.editStamp(editor, now)); err != nil {
			return fmt.Errorf("stamp order: %w", err)
		}

		if err := s.editLogRepo.Append(ctx, tx, entries...); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		changed = true
		return nil
	})
	if err != nil {
		s.logFailure("update order item", orderID, editor, err)
		return nil, err
	}

	if changed {
		s.log.WithFields(logrus.Fields{"order_id": orderID, "item_id": itemID, "editor_id": editor.ID}).Info("order item updated")
	}

	item, err := s.orderRepo.FindItem(ctx, s.db, orderID, itemID)
	if err != nil {
		return nil, notFound("order item", err)
	}
	return item, nil
}

func (s *orderEditServiceImpl) RecalculateTotals(ctx context.Context, orderID uint, editor model.Editor) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		now := s.now()
		result, err := s.recalculate(ctx, tx, order, editor, now)
		if err != nil {
			return err
		}

		if !result.changed() {
			return nil
		}

		metadata := map[string]any{
			"old_subtotal":    result.oldSubtotal.String(),
			"new_subtotal":    result.newSubtotal.String(),
			"old_grand_total": result.oldGrandTotal.String(),
			"new_grand_total": result.newGrandTotal.String(),
		}
		result.annotate(metadata)

		entry := s.newEditLog(order.ID, editor, now, model.ActionRecalculateDiscount, "discount_amount",
			result.oldDiscount, result.newDiscount, metadata)
		if err := s.editLogRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logFailure("recalculate order totals", orderID, editor, err)
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

type recalculation struct {
	oldSubtotal   decimal.Decimal
	newSubtotal   decimal.Decimal
	oldDiscount   decimal.Decimal
	newDiscount   decimal.Decimal
	oldGrandTotal decimal.Decimal
	newGrandTotal decimal.Decimal
	couponWarning string
}

func (r *recalculation) changed() bool {
	return !r.oldSubtotal.Equal(r.newSubtotal) || !r.oldDiscount.Equal(r.newDiscount)
}

// annotate copies the coupon warning into an edit log's metadata so the
// reason a coupon was dropped survives even when no separate entry is written.
func (r *recalculation) annotate(metadata map[string]any) {
	if r.couponWarning != "" && metadata != nil {
		metadata["coupon_warning"] = r.couponWarning
	}
}

// recalculate recomputes subtotal, discount and grand total from the stored
// items, re-checks the attached coupon and tracks price adjustments on
// completed orders. It stamps the order as edited and writes no edit log.
func (s *orderEditServiceImpl) recalculate(ctx context.Context, tx *gorm.DB, order *model.Order, editor model.Editor, now time.Time) (*recalculation, error) {
	items, err := s.orderRepo.GetOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	result := &recalculation{
		oldSubtotal:   order.TotalAmount,
		newSubtotal:   subtotal,
		oldDiscount:   order.DiscountAmount,
		newDiscount:   decimal.Zero,
		oldGrandTotal: order.GrandTotal,
	}

	fields := s.editStamp(editor, now)

	if order.CouponID != nil {
		coupon, err := s.couponRepo.FindByID(ctx, tx, *order.CouponID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find coupon: %w", err)
		}

		code := ""
		if order.CouponCode != nil {
			code = *order.CouponCode
		}

		switch {
		case coupon == nil:
			result.couponWarning = fmt.Sprintf("Kupon %s sudah tidak tersedia dan dilepas dari pesanan", code)
		case !coupon.IsActive:
			result.couponWarning = fmt.Sprintf("Kupon %s sudah tidak aktif dan dilepas dari pesanan", code)
		case coupon.MinPurchase.Valid && subtotal.LessThan(coupon.MinPurchase.Decimal):
			result.couponWarning = fmt.Sprintf("Subtotal %s di bawah minimal pembelian kupon %s (%s), kupon dilepas dari pesanan",
				formatRupiah(subtotal), code, formatRupiah(coupon.MinPurchase.Decimal))
		default:
			result.newDiscount = s.couponService.Calculate(coupon, subtotal)
		}

		if result.couponWarning != "" {
			fields["coupon_id"] = nil
			fields["coupon_code"] = nil
			order.CouponID = nil
			order.CouponCode = nil
		}
	}

	result.newGrandTotal = subtotal.Sub(result.newDiscount)

	fields["total_amount"] = result.newSubtotal
	fields["discount_amount"] = result.newDiscount
	fields["grand_total"] = result.newGrandTotal

	if order.Status == model.OrderStatusCompleted && !result.newGrandTotal.Equal(result.oldGrandTotal) {
		status, amount := priceAdjustment(order, result.newGrandTotal)
		fields["price_adjustment_status"] = status
		fields["price_adjustment_amount"] = amount
		order.PriceAdjustmentStatus = status
		order.PriceAdjustmentAmount = amount
	}

	if err := s.orderRepo.Update(ctx, tx, order.ID, fields); err != nil {
		return nil, fmt.Errorf("update order totals: %w", err)
	}

	order.TotalAmount = result.newSubtotal
	order.DiscountAmount = result.newDiscount
	order.GrandTotal = result.newGrandTotal

	return result, nil
}

// priceAdjustment compares the new grand total with what the customer has
// actually paid: the stored grand total corrected by any pending adjustment.
func priceAdjustment(order *model.Order, newGrandTotal decimal.Decimal) (model.PriceAdjustmentStatus, decimal.Decimal) {
	paid := order.GrandTotal
	switch order.PriceAdjustmentStatus {
	case model.PriceAdjustmentUnderpaid:
		paid = paid.Sub(order.PriceAdjustmentAmount)
	case model.PriceAdjustmentOverpaid:
		paid = paid.Add(order.PriceAdjustmentAmount)
	}

	diff := newGrandTotal.Sub(paid)
	switch diff.Sign() {
	case 1:
		return model.PriceAdjustmentUnderpaid, diff
	case -1:
		return model.PriceAdjustmentOverpaid, diff.Abs()
	default:
		return model.PriceAdjustmentNone, decimal.Zero
	}
}

func (s *orderEditServiceImpl) ResolveAdjustment(ctx context.Context, orderID uint, req *dto.ResolveAdjustmentRequest, editor model.Editor) (*model.Order, error) {
	if !req.Resolution.Valid() {
		return nil, newEditError("resolve adjustment", EditErrorInvalidResolution, "Pilihan penyelesaian selisih harga tidak valid")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			return notFound("order", err)
		}

		now := s.now()
		fields := s.editStamp(editor, now)
		fields["price_adjustment_status"] = model.PriceAdjustmentNone
		fields["price_adjustment_amount"] = decimal.Zero

		if err := s.orderRepo.Update(ctx, tx, order.ID, fields); err != nil {
			return fmt.Errorf("reset price adjustment: %w", err)
		}

		metadata := map[string]any{
			"resolution": string(req.Resolution),
			"amount":     order.PriceAdjustmentAmount.String(),
		}
		if req.Reason != "" {
			metadata["reason"] = req.Reason
		}

		entry := s.newEditLog(order.ID, editor, now, model.ActionAdjustmentResolved, "price_adjustment_status",
			string(order.PriceAdjustmentStatus), string(model.PriceAdjustmentNone), metadata)
		if err := s.editLogRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("append edit log: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logFailure("resolve price adjustment", orderID, editor, err)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "editor_id": editor.ID, "resolution": req.Resolution}).
		Info("price adjustment resolved")

	return s.GetOrder(ctx, orderID)
}

func (s *orderEditServiceImpl) CheckStockAvailability(ctx context.Context, req *dto.StockCheckRequest) (*dto.StockAvailability, error) {
	sku, err := s.inventoryRepo.FindByVariants(ctx, s.db, req.ProductID, req.VariantIDs, false)
	if err != nil {
		return nil, fmt.Errorf("find sku: %w", err)
	}
	if sku == nil {
		return &dto.StockAvailability{
			Available: true,
			Message:   "Stok tidak dibatasi",
		}, nil
	}

	stock := sku.Stock
	if req.ExcludeItemID != nil {
		item, err := s.orderRepo.FindItemByID(ctx, s.db, *req.ExcludeItemID)
		switch {
		case err == nil:
			stock += item.Quantity
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("get order item: %w", err)
		}
	}

	if stock < req.Quantity {
		return &dto.StockAvailability{
			Available: false,
			Stock:     &stock,
			Message:   fmt.Sprintf("Stok tidak mencukupi. Tersedia: %d", stock),
		}, nil
	}

	return &dto.StockAvailability{
		Available: true,
		Stock:     &stock,
		Message:   "Stok tersedia",
	}, nil
}

func (s *orderEditServiceImpl) ListEditLogs(ctx context.Context, orderID uint) ([]*dto.EditLogEntry, error) {
	if _, err := s.orderRepo.FindByID(ctx, s.db, orderID); err != nil {
		return nil, notFound("order", err)
	}

	logs, err := s.editLogRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list edit logs: %w", err)
	}

	entries := make([]*dto.EditLogEntry, len(logs))
	for i, l := range logs {
		actor := systemActorName
		if l.User != nil && l.User.Name != "" {
			actor = l.User.Name
		}

		entries[i] = &dto.EditLogEntry{
			ID:          l.ID,
			Action:      l.Action,
			FieldName:   l.FieldName,
			OldValue:    l.OldValue,
			NewValue:    l.NewValue,
			Metadata:    l.Metadata,
			ActorName:   actor,
			Description: DescribeEditLog(l.Action, deref(l.FieldName), deref(l.OldValue), deref(l.NewValue), l.Metadata, actor),
			CreatedAt:   l.CreatedAt,
		}
	}

	return entries, nil
}

// holdsStock reports whether the order's items are counted against stock.
// A cancelled order gave its stock back when it was cancelled.
func holdsStock(order *model.Order) bool {
	return order.Status != model.OrderStatusCancelled
}

func (s *orderEditServiceImpl) editStamp(editor model.Editor, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"last_edited_at": now,
		"last_edited_by": editor.UserID(),
	}
}

func (s *orderEditServiceImpl) newEditLog(orderID uint, editor model.Editor, now time.Time, action model.EditAction, field string, oldValue, newValue any, metadata map[string]any) *model.OrderEditLog {
	entry := &model.OrderEditLog{
		OrderID:   orderID,
		UserID:    editor.UserID(),
		Action:    action,
		OldValue:  stringify(oldValue),
		NewValue:  stringify(newValue),
		Metadata:  metadata,
		CreatedAt: now,
	}
	if field != "" {
		entry.FieldName = &field
	}
	return entry
}

func (s *orderEditServiceImpl) logFailure(op string, orderID uint, editor model.Editor, err error) {
	entry := s.log.WithFields(logrus.Fields{"order_id": orderID, "editor_id": editor.ID}).WithError(err)

	var editErr *EditError
	var couponErr *CouponError
	switch {
	case errors.As(err, &editErr), errors.As(err, &couponErr), errors.Is(err, ErrNotFound):
		entry.Warn(op + " rejected")
	default:
		entry.Error(op + " failed")
	}
}

// stringify renders an edit log value. Slices and maps become JSON.
func stringify(v any) *string {
	var out string
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		out = value
	case decimal.Decimal:
		out = value.String()
	case fmt.Stringer:
		out = value.String()
	case int, int64, uint, uint64, bool:
		out = fmt.Sprint(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			out = fmt.Sprint(value)
		} else {
			out = string(b)
		}
	}
	return &out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
