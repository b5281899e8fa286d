package service

import (
	"fmt"
	"storefront-backoffice/internal/model"

	"github.com/shopspring/decimal"
)

var fieldLabels = map[string]string{
	"checkout_name":  "nama pemesan",
	"checkout_phone": "nomor telepon",
	"qobilah":        "qobilah",
	"payment_method": "metode pembayaran",
	"status":         "status",
	"recipient_name": "nama penerima",
	"quantity":       "jumlah",
}

var statusLabels = map[string]string{
	string(model.OrderStatusNew):         "Baru",
	string(model.OrderStatusPaid):        "Dibayar",
	string(model.OrderStatusProcessed):   "Diproses",
	string(model.OrderStatusReadyPickup): "Siap Diambil",
	string(model.OrderStatusCompleted):   "Selesai",
	string(model.OrderStatusCancelled):   "Dibatalkan",
}

var adjustmentLabels = map[string]string{
	string(model.PriceAdjustmentNone):      "tidak ada selisih",
	string(model.PriceAdjustmentOverpaid):  "kelebihan bayar",
	string(model.PriceAdjustmentUnderpaid): "kekurangan bayar",
}

var resolutionLabels = map[string]string{
	string(model.ResolutionPaid):     "sudah dibayar",
	string(model.ResolutionRefunded): "sudah dikembalikan",
	string(model.ResolutionIgnored):  "diabaikan",
}

// DescribeEditLog renders one edit log entry as a sentence for the order
// history view.
func DescribeEditLog(action model.EditAction, fieldName, oldValue, newValue string, metadata map[string]any, actorName string) string {
	if actorName == "" {
		actorName = systemActorName
	}

	switch action {
	case model.ActionUpdateInfo:
		return fmt.Sprintf("%s mengubah %s dari \"%s\" menjadi \"%s\"",
			actorName, label(fieldLabels, fieldName), oldValue, newValue)

	case model.ActionUpdateStatus:
		return fmt.Sprintf("%s mengubah status pesanan dari %s menjadi %s",
			actorName, label(statusLabels, oldValue), label(statusLabels, newValue))

	case model.ActionAddItem:
		return fmt.Sprintf("%s menambahkan item %s sebanyak %s%s",
			actorName, metaString(metadata, "product_name"), metaString(metadata, "quantity"), recipientSuffix(metadata))

	case model.ActionRemoveItem:
		return fmt.Sprintf("%s menghapus item %s sebanyak %s%s",
			actorName, metaString(metadata, "product_name"), metaString(metadata, "quantity"), recipientSuffix(metadata))

	case model.ActionUpdateItem:
		product := metaString(metadata, "product_name")
		switch fieldName {
		case "quantity":
			return fmt.Sprintf("%s mengubah jumlah item %s dari %s menjadi %s", actorName, product, oldValue, newValue)
		case "recipient_name":
			return fmt.Sprintf("%s mengubah nama penerima item %s dari \"%s\" menjadi \"%s\"", actorName, product, oldValue, newValue)
		case "stock_restored":
			return fmt.Sprintf("Stok %s dikembalikan sebanyak %s karena pesanan dibatalkan", product, metaString(metadata, "quantity"))
		case "stock_consumed":
			return fmt.Sprintf("Stok %s dipakai kembali sebanyak %s karena pesanan dibuka ulang", product, metaString(metadata, "quantity"))
		}
		return fmt.Sprintf("%s mengubah item %s", actorName, product)

	case model.ActionRecalculateDiscount:
		sentence := fmt.Sprintf("%s menghitung ulang diskon dari %s menjadi %s",
			actorName, rupiah(oldValue), rupiah(newValue))
		if warning := metaString(metadata, "coupon_warning"); warning != "" {
			sentence += " (" + warning + ")"
		}
		return sentence

	case model.ActionAdjustmentResolved:
		sentence := fmt.Sprintf("%s menyelesaikan %s sebesar %s: %s",
			actorName, label(adjustmentLabels, oldValue), rupiah(metaString(metadata, "amount")),
			label(resolutionLabels, metaString(metadata, "resolution")))
		if reason := metaString(metadata, "reason"); reason != "" {
			sentence += " (" + reason + ")"
		}
		return sentence
	}

	return fmt.Sprintf("%s melakukan perubahan pada pesanan", actorName)
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

func recipientSuffix(metadata map[string]any) string {
	if name := metaString(metadata, "recipient_name"); name != "" {
		return " untuk " + name
	}
	return ""
}

func rupiah(value string) string {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	return formatRupiah(amount)
}

// metaString reads a metadata value as text. Numbers decoded from JSON come
// back as float64 and are printed without a fraction.
func metaString(metadata map[string]any, key string) string {
	v, ok := metadata[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return decimal.NewFromFloat(value).String()
	default:
		return fmt.Sprint(value)
	}
}
