package returns

import "time"

// ReturnLabel is a prepaid shipping label generated for an approved RMA.
type ReturnLabel struct {
	ID             string    `json:"label_id"`
	RMAID          string    `json:"rma_id"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
	LabelURL       string    `json:"label_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExpectedReturnStatus tracks an inbound return at the warehouse.
type ExpectedReturnStatus string

const (
	ExpectedReturnExpected ExpectedReturnStatus = "EXPECTED"
	ExpectedReturnReceived ExpectedReturnStatus = "RECEIVED"
)

// ExpectedReturn tells the warehouse to watch for an inbound RMA shipment.
// OverrideReason is set when a discontinued or end-of-life product comes
// back under a policy exception.
type ExpectedReturn struct {
	ID             string               `json:"expected_return_id"`
	RMAID          string               `json:"rma_id"`
	SKU            string               `json:"sku"`
	Quantity       int                  `json:"quantity"`
	OverrideReason string               `json:"override_reason,omitempty"`
	Status         ExpectedReturnStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	ReceivedAt     *time.Time           `json:"received_at,omitempty"`
}

// ShipmentStatus tracks an outbound shipment.
type ShipmentStatus string

const (
	ShipmentPendingRelease ShipmentStatus = "PENDING_RELEASE"
	ShipmentReleased       ShipmentStatus = "RELEASED"
	ShipmentDelivered      ShipmentStatus = "DELIVERED"
)

// CanTransitionTo reports whether a shipment status change is allowed.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case ShipmentPendingRelease:
		return target == ShipmentReleased
	case ShipmentReleased:
		return target == ShipmentDelivered
	default:
		return false
	}
}

// Shipment is an outbound order shipment held in the warehouse until
// released for fulfillment.
type Shipment struct {
	ID             string         `json:"shipment_id"`
	OrderID        string         `json:"order_id"`
	Status         ShipmentStatus `json:"status"`
	TrackingNumber string         `json:"tracking_number,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	ReleasedAt     *time.Time     `json:"released_at,omitempty"`
}
