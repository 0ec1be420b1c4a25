// Package order holds carts, orders, and their pricing rules.
package order

import (
	"time"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
)

// CartStatus tracks a cart through its lifetime.
type CartStatus string

const (
	CartStatusOpen       CartStatus = "OPEN"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

// CanTransitionTo reports whether a cart status change is allowed.
func (s CartStatus) CanTransitionTo(target CartStatus) bool {
	switch s {
	case CartStatusOpen:
		return target == CartStatusCheckedOut
	default:
		return false
	}
}

// LineItem is one product entry in a cart or order. UnitPrice is
// snapshotted when the item is added so later catalog price changes do not
// reprice existing carts.
type LineItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times unit price.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart collects line items for a customer before checkout.
type Cart struct {
	ID            string     `json:"cart_id"`
	CustomerID    string     `json:"customer_id"`
	Status        CartStatus `json:"status"`
	Items         []LineItem `json:"items"`
	AppliedCredit string     `json:"applied_credit_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ErrCartNotOpen is returned for mutations against a checked-out cart.
var ErrCartNotOpen = platformerrors.New(platformerrors.CodeInvalidState, "cart is not open")

// ErrCartEmpty is returned when checking out a cart with no items.
var ErrCartEmpty = platformerrors.New(platformerrors.CodeInvalidState, "cart has no items")

// AddItem adds quantity units of a product, merging with an existing line
// for the same SKU. The returned cart is a modified copy.
func (c Cart) AddItem(sku, name string, quantity int, unitPrice decimal.Decimal, now time.Time) (Cart, error) {
	if c.Status != CartStatusOpen {
		return c, platformerrors.WithMetadata(platformerrors.CodeInvalidState,
			"cart is not open", map[string]string{"cart_id": c.ID, "status": string(c.Status)})
	}
	if quantity <= 0 {
		return c, platformerrors.New(platformerrors.CodeInvalidArgument, "quantity must be positive")
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	merged := false
	for i := range items {
		if items[i].SKU == sku {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, LineItem{SKU: sku, Name: name, Quantity: quantity, UnitPrice: unitPrice})
	}
	c.Items = items
	c.UpdatedAt = now
	return c, nil
}

// RemoveItem drops a SKU from the cart entirely.
func (c Cart) RemoveItem(sku string, now time.Time) (Cart, error) {
	if c.Status != CartStatusOpen {
		return c, ErrCartNotOpen
	}
	items := make([]LineItem, 0, len(c.Items))
	found := false
	for _, li := range c.Items {
		if li.SKU == sku {
			found = true
			continue
		}
		items = append(items, li)
	}
	if !found {
		return c, platformerrors.WithMetadata(platformerrors.CodeNotFound,
			"item not in cart", map[string]string{"cart_id": c.ID, "sku": sku})
	}
	c.Items = items
	c.UpdatedAt = now
	return c, nil
}

// Subtotal sums the line totals.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.LineTotal())
	}
	return total
}
