package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// SearchProducts returns catalog products matching the filters, in stable
// SKU order.
func (a *App) SearchProducts(ctx context.Context, filters catalog.Filters) ([]catalog.Product, error) {
	var out []catalog.Product
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		for _, p := range tx.Products() {
			if filters.Matches(p) {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.record(ctx, "erp", "search_products", filters, out)
	return out, nil
}

// GetProduct returns a single product by SKU.
func (a *App) GetProduct(ctx context.Context, sku string) (catalog.Product, error) {
	var out catalog.Product
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		p, err := tx.Product(sku)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// Availability is the stock and lead-time answer for one SKU.
type Availability struct {
	SKU          string `json:"sku"`
	Available    bool   `json:"available"`
	Quantity     int    `json:"quantity"`
	LeadTimeDays int    `json:"lead_time_days"`
	Warehouse    string `json:"warehouse_location"`
}

// CheckAvailability reports current stock and restock lead time for a SKU.
func (a *App) CheckAvailability(ctx context.Context, sku string) (Availability, error) {
	p, err := a.GetProduct(ctx, sku)
	if err != nil {
		return Availability{}, err
	}
	out := Availability{
		SKU:          sku,
		Available:    p.InStock(),
		Quantity:     p.Stock,
		LeadTimeDays: p.LeadTimeDays,
		Warehouse:    warehouseFor(p),
	}
	a.record(ctx, "erp", "check_availability", map[string]string{"sku": sku}, out)
	return out, nil
}

// ReturnEligibility is the window-based answer for one SKU on one order.
// The check runs on the caller-supplied days-since-delivery figure so
// upstream agents can probe hypothetical timelines.
type ReturnEligibility struct {
	Eligible      bool            `json:"eligible"`
	Reason        string          `json:"reason"`
	DaysRemaining int             `json:"days_remaining"`
	RestockingFee decimal.Decimal `json:"restocking_fee"`
}

// CheckReturnEligibility answers whether a SKU on an order is inside the
// standard return window, given days elapsed since delivery.
func (a *App) CheckReturnEligibility(ctx context.Context, sku, orderID string, daysSinceDelivery int) (ReturnEligibility, error) {
	if daysSinceDelivery < 0 {
		return ReturnEligibility{}, platformerrors.New(platformerrors.CodeInvalidArgument, "days since delivery must not be negative")
	}
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		o, err := tx.Order(orderID)
		if err != nil {
			return err
		}
		if !o.ContainsSKU(sku) {
			return storage.NotFound("order line", sku)
		}
		return nil
	})
	if err != nil {
		return ReturnEligibility{}, err
	}
	var out ReturnEligibility
	if daysSinceDelivery <= a.windowDays {
		out = ReturnEligibility{
			Eligible:      true,
			Reason:        fmt.Sprintf("Within standard %d-day return window", a.windowDays),
			DaysRemaining: a.windowDays - daysSinceDelivery,
			RestockingFee: decimal.Zero,
		}
	} else {
		out = ReturnEligibility{
			Eligible: false,
			Reason: fmt.Sprintf("Return window expired (%d days since delivery, limit is %d)",
				daysSinceDelivery, a.windowDays),
			RestockingFee: decimal.Zero,
		}
	}
	a.record(ctx, "erp", "check_return_eligibility", map[string]any{
		"sku": sku, "order_id": orderID, "days_since_delivery": daysSinceDelivery,
	}, out)
	return out, nil
}

func warehouseFor(p catalog.Product) string {
	if !p.InStock() {
		return "OUT_OF_STOCK"
	}
	return "CA-SAN-01"
}
