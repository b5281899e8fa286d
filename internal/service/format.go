package service

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// formatRupiah renders an amount with Indonesian digit grouping, e.g. "Rp 200.000".
func formatRupiah(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return idPrinter.Sprintf("Rp %d", amount.IntPart())
	}
	f, _ := amount.Round(2).Float64()
	return idPrinter.Sprintf("Rp %.2f", f)
}
