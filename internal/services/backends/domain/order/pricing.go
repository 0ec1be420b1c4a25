package order

import "github.com/shopspring/decimal"

var (
	taxRate           = decimal.RequireFromString("0.08")
	freeShippingOver  = decimal.RequireFromString("50.00")
	flatShippingPrice = decimal.RequireFromString("8.99")
)

// Totals is the full price breakdown for a cart at checkout.
//
// Store credit applies to merchandise only: CreditApplied is capped at the
// subtotal and Payable is the post-credit merchandise amount, never
// negative. Tax is charged on what the customer actually pays.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	CreditApplied decimal.Decimal `json:"credit_applied"`
	Payable       decimal.Decimal `json:"payable"`
	Tax           decimal.Decimal `json:"tax"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
}

// ComputeTotals prices a subtotal with an optional store credit. Tax is 8%
// of the payable merchandise amount; orders with a subtotal over the
// free-shipping threshold ship free, otherwise a flat rate applies.
func ComputeTotals(subtotal, credit decimal.Decimal) Totals {
	if credit.IsNegative() {
		credit = decimal.Zero
	}
	applied := credit
	if applied.GreaterThan(subtotal) {
		applied = subtotal
	}
	payable := subtotal.Sub(applied)
	tax := payable.Mul(taxRate).Round(2)
	shipping := flatShippingPrice
	if subtotal.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	return Totals{
		Subtotal:      subtotal.Round(2),
		CreditApplied: applied.Round(2),
		Payable:       payable.Round(2),
		Tax:           tax,
		Shipping:      shipping,
		Total:         payable.Add(tax).Add(shipping).Round(2),
	}
}
