package order

import (
	"time"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
)

// Status tracks a placed order.
type Status string

const (
	StatusPlaced          Status = "PLACED"
	StatusDelivered       Status = "DELIVERED"
	StatusReturnRequested Status = "RETURN_REQUESTED"
	StatusClosed          Status = "CLOSED"
)

// CanTransitionTo reports whether an order status change is allowed.
// Orders are closed, never deleted.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPlaced:
		return target == StatusDelivered || target == StatusClosed
	case StatusDelivered:
		return target == StatusReturnRequested || target == StatusClosed
	case StatusReturnRequested:
		return target == StatusClosed
	default:
		return false
	}
}

// IsTerminal reports whether the order can change no further.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// Order is a placed order with its price breakdown frozen at checkout.
type Order struct {
	ID          string     `json:"order_id"`
	CustomerID  string     `json:"customer_id"`
	CartID      string     `json:"cart_id,omitempty"`
	Status      Status     `json:"status"`
	Items       []LineItem `json:"items"`
	Totals      Totals     `json:"totals"`
	PlacedAt    time.Time  `json:"placed_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// Transition moves the order to target, enforcing the status table.
func (o Order) Transition(target Status, now time.Time) (Order, error) {
	if !o.Status.CanTransitionTo(target) {
		return o, platformerrors.WithMetadata(platformerrors.CodeInvalidState,
			"invalid order status transition", map[string]string{
				"order_id": o.ID,
				"from":     string(o.Status),
				"to":       string(target),
			})
	}
	o.Status = target
	if target == StatusDelivered {
		at := now
		o.DeliveredAt = &at
	}
	return o, nil
}

// ContainsSKU reports whether the order includes the given product.
func (o Order) ContainsSKU(sku string) bool {
	for _, li := range o.Items {
		if li.SKU == sku {
			return true
		}
	}
	return false
}

// Line returns the line item for a SKU.
func (o Order) Line(sku string) (LineItem, bool) {
	for _, li := range o.Items {
		if li.SKU == sku {
			return li, true
		}
	}
	return LineItem{}, false
}
