// Package testutil provides an in-memory database and seed helpers for tests.
package testutil

import (
	"fmt"
	"storefront-backoffice/internal/client"
	"storefront-backoffice/internal/config"
	"storefront-backoffice/internal/model"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated SQLite database private to t. A single
// connection keeps transactions and plain reads on the same handle.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := client.InitDatabaseClient(config.Database{
		Driver:          "sqlite",
		URL:             fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func Money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProduct seeds a product with the given variants.
func CreateProduct(t *testing.T, db *gorm.DB, name string, price int64, variants ...model.ProductVariant) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Price: Money(price), Variants: variants}
	require.NoError(t, db.Create(product).Error)
	return product
}

func CreateSku(t *testing.T, db *gorm.DB, productID uint, stock int, variantIDs ...uint) *model.ProductSku {
	t.Helper()
	sku := &model.ProductSku{ProductID: productID, Stock: stock, VariantIDs: variantIDs}
	require.NoError(t, db.Create(sku).Error)
	return sku
}

func CreateCoupon(t *testing.T, db *gorm.DB, coupon *model.Coupon) *model.Coupon {
	t.Helper()
	require.NoError(t, db.Create(coupon).Error)
	if !coupon.IsActive {
		// gorm skips zero values on create, so the column default wins.
		require.NoError(t, db.Model(coupon).Update("is_active", false).Error)
	}
	return coupon
}

// CreateOrder seeds an order in status new with one item per product,
// with totals computed the way checkout would.
func CreateOrder(t *testing.T, db *gorm.DB, items ...model.OrderItem) *model.Order {
	t.Helper()
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	order := &model.Order{
		CheckoutName:          "Fulan",
		CheckoutPhone:         "081200000001",
		Qobilah:               "Bani Hasyim",
		PaymentMethod:         model.PaymentMethodTransfer,
		Status:                model.OrderStatusNew,
		TotalAmount:           total,
		GrandTotal:            total,
		PriceAdjustmentStatus: model.PriceAdjustmentNone,
		Items:                 items,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func Stock(t *testing.T, db *gorm.DB, skuID uint) int {
	t.Helper()
	var sku model.ProductSku
	require.NoError(t, db.First(&sku, skuID).Error)
	return sku.Stock
}

func ReloadOrder(t *testing.T, db *gorm.DB, orderID uint) *model.Order {
	t.Helper()
	var order model.Order
	require.NoError(t, db.Preload("Items").First(&order, orderID).Error)
	return &order
}

func EditLogs(t *testing.T, db *gorm.DB, orderID uint) []model.OrderEditLog {
	t.Helper()
	var logs []model.OrderEditLog
	require.NoError(t, db.Where("order_id = ?", orderID).Order("id").Find(&logs).Error)
	return logs
}
