package service

import (
	"storefront-backoffice/internal/model"
	"storefront-backoffice/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeEditLog(t *testing.T) {
	tests := []struct {
		name     string
		action   model.EditAction
		field    string
		oldValue string
		newValue string
		metadata map[string]any
		actor    string
		expected string
	}{
		{
			name:     "info field",
			action:   model.ActionUpdateInfo,
			field:    "checkout_phone",
			oldValue: "0811",
			newValue: "0812",
			actor:    "Admin",
			expected: `Admin mengubah nomor telepon dari "0811" menjadi "0812"`,
		},
		{
			name:     "unknown info field keeps column name",
			action:   model.ActionUpdateInfo,
			field:    "notes",
			oldValue: "a",
			newValue: "b",
			actor:    "Admin",
			expected: `Admin mengubah notes dari "a" menjadi "b"`,
		},
		{
			name:     "status",
			action:   model.ActionUpdateStatus,
			field:    "status",
			oldValue: "ready_pickup",
			newValue: "completed",
			actor:    "Admin",
			expected: "Admin mengubah status pesanan dari Siap Diambil menjadi Selesai",
		},
		{
			name:     "add item",
			action:   model.ActionAddItem,
			metadata: map[string]any{"product_name": "Mushaf", "quantity": float64(2), "recipient_name": "Aisyah"},
			actor:    "Admin",
			expected: "Admin menambahkan item Mushaf sebanyak 2 untuk Aisyah",
		},
		{
			name:     "remove item without recipient",
			action:   model.ActionRemoveItem,
			metadata: map[string]any{"product_name": "Siwak", "quantity": 3},
			actor:    "Admin",
			expected: "Admin menghapus item Siwak sebanyak 3",
		},
		{
			name:     "item quantity",
			action:   model.ActionUpdateItem,
			field:    "quantity",
			oldValue: "2",
			newValue: "5",
			metadata: map[string]any{"product_name": "Mushaf"},
			actor:    "Admin",
			expected: "Admin mengubah jumlah item Mushaf dari 2 menjadi 5",
		},
		{
			name:     "item recipient",
			action:   model.ActionUpdateItem,
			field:    "recipient_name",
			oldValue: "Aisyah",
			newValue: "Khadijah",
			metadata: map[string]any{"product_name": "Mushaf"},
			actor:    "Admin",
			expected: `Admin mengubah nama penerima item Mushaf dari "Aisyah" menjadi "Khadijah"`,
		},
		{
			name:     "stock restored on cancel",
			action:   model.ActionUpdateItem,
			field:    "stock_restored",
			metadata: map[string]any{"product_name": "Mushaf", "quantity": float64(4)},
			actor:    "Admin",
			expected: "Stok Mushaf dikembalikan sebanyak 4 karena pesanan dibatalkan",
		},
		{
			name:     "recalculated discount with warning",
			action:   model.ActionRecalculateDiscount,
			field:    "discount_amount",
			oldValue: "20000",
			newValue: "0",
			metadata: map[string]any{"coupon_warning": "Kupon HEMAT sudah tidak aktif dan dilepas dari pesanan"},
			actor:    "Admin",
			expected: "Admin menghitung ulang diskon dari Rp 20.000 menjadi Rp 0 (Kupon HEMAT sudah tidak aktif dan dilepas dari pesanan)",
		},
		{
			name:     "adjustment resolved",
			action:   model.ActionAdjustmentResolved,
			field:    "price_adjustment_status",
			oldValue: "overpaid",
			newValue: "none",
			metadata: map[string]any{"resolution": "refunded", "amount": "150000", "reason": "Transfer balik"},
			actor:    "Admin",
			expected: "Admin menyelesaikan kelebihan bayar sebesar Rp 150.000: sudah dikembalikan (Transfer balik)",
		},
		{
			name:     "missing actor",
			action:   model.ActionUpdateStatus,
			oldValue: "new",
			newValue: "cancelled",
			expected: "System mengubah status pesanan dari Baru menjadi Dibatalkan",
		},
		{
			name:     "unknown action",
			action:   "merge_orders",
			actor:    "Admin",
			expected: "Admin melakukan perubahan pada pesanan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeEditLog(tt.action, tt.field, tt.oldValue, tt.newValue, tt.metadata, tt.actor)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 1.250.000", formatRupiah(testutil.Money(1250000)))
	assert.Equal(t, "Rp 0", formatRupiah(testutil.Money(0)))
}
