package app

import (
	"context"
	"strings"
	"time"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// FulfillmentEligibility is the warehouse's answer for one SKU and
// destination.
type FulfillmentEligibility struct {
	SKU               string `json:"sku"`
	Eligible          bool   `json:"eligible"`
	ShippingMethod    string `json:"shipping_method"`
	EstimatedDelivery string `json:"estimated_delivery"`
	Warehouse         string `json:"warehouse"`
}

// CheckFulfillment reports whether a SKU can ship to a postal code.
// Bay Area postal codes get same-day delivery from the local warehouse.
func (a *App) CheckFulfillment(ctx context.Context, sku, postalCode string) (FulfillmentEligibility, error) {
	p, err := a.GetProduct(ctx, sku)
	if err != nil {
		return FulfillmentEligibility{}, err
	}

	out := FulfillmentEligibility{SKU: sku}
	if !p.InStock() {
		out.ShippingMethod = "N/A"
		out.EstimatedDelivery = "N/A - Out of stock"
		out.Warehouse = "N/A"
	} else {
		out.Eligible = true
		out.Warehouse = "CA-SAN-01"
		if strings.HasPrefix(postalCode, "94") || strings.HasPrefix(postalCode, "95") {
			out.ShippingMethod = "SAME_DAY"
			out.EstimatedDelivery = a.now().Add(6 * time.Hour).Format("2006-01-02 15:04")
		} else {
			out.ShippingMethod = "STANDARD"
			out.EstimatedDelivery = a.now().AddDate(0, 0, 3).Format("2006-01-02 15:04")
		}
	}
	a.record(ctx, "wms", "check_fulfillment",
		map[string]string{"sku": sku, "postal_code": postalCode}, out)
	return out, nil
}

// ReleaseShipment releases the pending shipment for an order. The carrier
// follows the shipping method: same-day via OnTrac, overnight via FedEx,
// standard via USPS.
func (a *App) ReleaseShipment(ctx context.Context, orderID, shippingMethod string) (returns.Shipment, error) {
	trackingID, err := a.newID("TRK")
	if err != nil {
		return returns.Shipment{}, err
	}
	now := a.now()

	var out returns.Shipment
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Order(orderID); err != nil {
			return err
		}
		shipment, ok := tx.ShipmentByOrder(orderID)
		if !ok {
			return storage.NotFound("shipment", orderID)
		}
		if shipment.Status != returns.ShipmentPendingRelease {
			out = shipment
			return nil
		}
		shipment.Status = returns.ShipmentReleased
		shipment.TrackingNumber = trackingID
		at := now
		shipment.ReleasedAt = &at
		tx.PutShipment(shipment)
		out = shipment
		return nil
	})
	if err != nil {
		return returns.Shipment{}, err
	}
	a.record(ctx, "wms", "release_shipment",
		map[string]string{"order_id": orderID, "shipping_method": shippingMethod, "carrier": carrierFor(shippingMethod)}, out)
	return out, nil
}

// MarkShipmentDelivered completes a released shipment and moves its order
// to DELIVERED, which starts the return window.
func (a *App) MarkShipmentDelivered(ctx context.Context, shipmentID string) (returns.Shipment, error) {
	now := a.now()

	var out returns.Shipment
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		shipment, err := tx.Shipment(shipmentID)
		if err != nil {
			return err
		}
		if !shipment.Status.CanTransitionTo(returns.ShipmentDelivered) {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidState,
				"shipment not released", map[string]string{
					"shipment_id": shipmentID,
					"status":      string(shipment.Status),
				})
		}
		shipment.Status = returns.ShipmentDelivered

		o, err := tx.Order(shipment.OrderID)
		if err != nil {
			return err
		}
		o, err = o.Transition(order.StatusDelivered, now)
		if err != nil {
			return err
		}
		tx.PutShipment(shipment)
		tx.PutOrder(o)
		out = shipment
		return nil
	})
	if err != nil {
		return returns.Shipment{}, err
	}
	a.record(ctx, "wms", "mark_delivered", map[string]string{"shipment_id": shipmentID}, out)
	return out, nil
}

func carrierFor(shippingMethod string) string {
	switch shippingMethod {
	case "SAME_DAY":
		return "OnTrac"
	case "OVERNIGHT":
		return "FedEx"
	default:
		return "USPS"
	}
}
