package pricing

import "github.com/shopspring/decimal"

// Line is one cart line as seen by the calculator: the per-unit prices and
// the pincodes for which this product's packing charge is waived.
type Line struct {
	ProductID           string
	UnitPrice           decimal.Decimal
	ShippingPrice       decimal.Decimal
	PackingPrice        decimal.Decimal
	Quantity            int
	FreePackingPincodes []string
}

// Quote is the pricing breakdown for a cart delivered to a given pincode.
// Amounts are kept unrounded; round only when rendering.
type Quote struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingTotal decimal.Decimal `json:"shipping_total"`
	PackingTotal  decimal.Decimal `json:"packing_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Calculate derives the order totals from the cart lines and the delivery
// pincode. Packing is charged per unit unless the pincode appears in the
// line's free-packing list. A zero-value shipping or packing price simply
// contributes nothing, so missing prices need no special casing.
func Calculate(lines []Line, pincode string) Quote {
	var q Quote
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		q.Subtotal = q.Subtotal.Add(line.UnitPrice.Mul(qty))
		q.ShippingTotal = q.ShippingTotal.Add(line.ShippingPrice.Mul(qty))
		if !freePacking(line, pincode) {
			q.PackingTotal = q.PackingTotal.Add(line.PackingPrice.Mul(qty))
		}
	}
	q.GrandTotal = q.Subtotal.Add(q.ShippingTotal).Add(q.PackingTotal)
	return q
}

func freePacking(line Line, pincode string) bool {
	if pincode == "" {
		return false
	}
	for _, p := range line.FreePackingPincodes {
		if p == pincode {
			return true
		}
	}
	return false
}

// Paise converts a rupee amount to the integer paise the payment gateway
// expects, rounding to the nearest paisa.
func Paise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Display renders an amount rounded to two places for presentation.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
