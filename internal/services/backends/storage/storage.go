// Package storage defines the persistence boundary for the backend
// simulation.
//
// The store holds records and enforces nothing else; business rules live
// in the service layer. Reads and writes run inside closure transactions
// so multi-record operations observe and mutate a consistent snapshot.
package storage

import (
	"context"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/domain/customer"
	"github.com/louisbranch/homestream/internal/services/backends/domain/notify"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/domain/payments"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
)

// NotFound builds the canonical not-found error for a stored entity.
func NotFound(entity, id string) error {
	return platformerrors.WithMetadata(platformerrors.CodeNotFound,
		entity+" not found", map[string]string{"entity": entity, "id": id})
}

// ReadTx is a consistent read view of the store. Returned values are
// copies; mutating them does not affect stored state.
type ReadTx interface {
	Customer(id string) (customer.Customer, error)
	Customers() []customer.Customer

	Product(sku string) (catalog.Product, error)
	Products() []catalog.Product

	Cart(id string) (order.Cart, error)
	Order(id string) (order.Order, error)
	Orders() []order.Order
	OrdersByCustomer(customerID string) []order.Order

	RMA(id string) (returns.RMA, error)
	RMAs() []returns.RMA
	RMAsByCustomer(customerID string) []returns.RMA

	Credit(id string) (payments.StoreCredit, error)
	CreditByRMA(rmaID string) (payments.StoreCredit, bool)
	CreditsByCustomer(customerID string) []payments.StoreCredit

	Charge(id string) (payments.Charge, error)
	ChargesByOrder(orderID string) []payments.Charge

	LabelByRMA(rmaID string) (returns.ReturnLabel, bool)
	ExpectedReturnByRMA(rmaID string) (returns.ExpectedReturn, bool)
	ExpectedReturns() []returns.ExpectedReturn

	Shipment(id string) (returns.Shipment, error)
	ShipmentByOrder(orderID string) (returns.Shipment, bool)
	Shipments() []returns.Shipment

	Emails() []notify.EmailNotification
	EmailsByCustomer(customerID string) []notify.EmailNotification
}

// Tx extends ReadTx with writes. Put operations insert or replace by
// primary key.
type Tx interface {
	ReadTx

	PutCustomer(customer.Customer)
	PutProduct(catalog.Product)
	PutCart(order.Cart)
	PutOrder(order.Order)
	PutRMA(returns.RMA)
	PutCredit(payments.StoreCredit)
	PutCharge(payments.Charge)
	PutLabel(returns.ReturnLabel)
	PutExpectedReturn(returns.ExpectedReturn)
	PutShipment(returns.Shipment)
	PutEmail(notify.EmailNotification)
}

// Store runs closure transactions against the record set.
type Store interface {
	// View runs fn against a read-only snapshot.
	View(ctx context.Context, fn func(ReadTx) error) error
	// Update runs fn exclusively; writes are visible to later
	// transactions only if fn returns nil.
	Update(ctx context.Context, fn func(Tx) error) error
	// Reset drops every record.
	Reset(ctx context.Context) error
}
