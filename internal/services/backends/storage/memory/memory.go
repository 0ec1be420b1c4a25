// Package memory is the in-memory storage.Store implementation backing the
// simulated enterprise systems.
//
// All state lives behind a single RWMutex. Update transactions stage their
// writes and merge them only when the closure succeeds, so a failed
// multi-record operation leaves no partial state behind.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/domain/customer"
	"github.com/louisbranch/homestream/internal/services/backends/domain/notify"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/domain/payments"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

type table[T any] struct {
	rows  map[string]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), clone: clone}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

// txTable overlays staged writes on a base table.
type txTable[T any] struct {
	base    *table[T]
	pending map[string]T
}

func (t *txTable[T]) get(id string) (T, bool) {
	if t.pending != nil {
		if v, ok := t.pending[id]; ok {
			return t.base.clone(v), true
		}
	}
	return t.base.get(id)
}

func (t *txTable[T]) put(id string, v T) {
	if t.pending == nil {
		t.pending = make(map[string]T)
	}
	t.pending[id] = t.base.clone(v)
}

func (t *txTable[T]) all() []T {
	ids := make([]string, 0, len(t.base.rows)+len(t.pending))
	for id := range t.base.rows {
		if _, staged := t.pending[id]; staged {
			continue
		}
		ids = append(ids, id)
	}
	for id := range t.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v, _ := t.get(id)
		out = append(out, v)
	}
	return out
}

func (t *txTable[T]) commit() {
	for id, v := range t.pending {
		t.base.rows[id] = v
	}
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCustomer(c customer.Customer) customer.Customer { return c }

func cloneProduct(p catalog.Product) catalog.Product {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func cloneCart(c order.Cart) order.Cart {
	c.Items = append([]order.LineItem(nil), c.Items...)
	return c
}

func cloneOrder(o order.Order) order.Order {
	o.Items = append([]order.LineItem(nil), o.Items...)
	o.DeliveredAt = cloneTimePtr(o.DeliveredAt)
	return o
}

func cloneRMA(r returns.RMA) returns.RMA { return r }

func cloneCredit(c payments.StoreCredit) payments.StoreCredit {
	c.AppliedAt = cloneTimePtr(c.AppliedAt)
	return c
}

func cloneCharge(c payments.Charge) payments.Charge { return c }

func cloneLabel(l returns.ReturnLabel) returns.ReturnLabel { return l }

func cloneExpectedReturn(e returns.ExpectedReturn) returns.ExpectedReturn {
	e.ReceivedAt = cloneTimePtr(e.ReceivedAt)
	return e
}

func cloneShipment(s returns.Shipment) returns.Shipment {
	s.ReleasedAt = cloneTimePtr(s.ReleasedAt)
	return s
}

func cloneEmail(e notify.EmailNotification) notify.EmailNotification { return e }

// Store is the in-memory record set.
type Store struct {
	mu sync.RWMutex

	customers       *table[customer.Customer]
	products        *table[catalog.Product]
	carts           *table[order.Cart]
	orders          *table[order.Order]
	rmas            *table[returns.RMA]
	credits         *table[payments.StoreCredit]
	charges         *table[payments.Charge]
	labels          *table[returns.ReturnLabel]
	expectedReturns *table[returns.ExpectedReturn]
	shipments       *table[returns.Shipment]
	emails          *table[notify.EmailNotification]
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.init()
	return s
}

func (s *Store) init() {
	s.customers = newTable(cloneCustomer)
	s.products = newTable(cloneProduct)
	s.carts = newTable(cloneCart)
	s.orders = newTable(cloneOrder)
	s.rmas = newTable(cloneRMA)
	s.credits = newTable(cloneCredit)
	s.charges = newTable(cloneCharge)
	s.labels = newTable(cloneLabel)
	s.expectedReturns = newTable(cloneExpectedReturn)
	s.shipments = newTable(cloneShipment)
	s.emails = newTable(cloneEmail)
}

func (s *Store) newTx() *tx {
	return &tx{
		customers:       txTable[customer.Customer]{base: s.customers},
		products:        txTable[catalog.Product]{base: s.products},
		carts:           txTable[order.Cart]{base: s.carts},
		orders:          txTable[order.Order]{base: s.orders},
		rmas:            txTable[returns.RMA]{base: s.rmas},
		credits:         txTable[payments.StoreCredit]{base: s.credits},
		charges:         txTable[payments.Charge]{base: s.charges},
		labels:          txTable[returns.ReturnLabel]{base: s.labels},
		expectedReturns: txTable[returns.ExpectedReturn]{base: s.expectedReturns},
		shipments:       txTable[returns.Shipment]{base: s.shipments},
		emails:          txTable[notify.EmailNotification]{base: s.emails},
	}
}

// readTx narrows a transaction to its read methods so View callers cannot
// type-assert their way to staged writes that would never commit.
type readTx struct{ storage.ReadTx }

// View runs fn against a read-only snapshot.
func (s *Store) View(ctx context.Context, fn func(storage.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(readTx{s.newTx()})
}

// Update runs fn exclusively and commits its writes only on success.
func (s *Store) Update(ctx context.Context, fn func(storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.newTx()
	if err := fn(t); err != nil {
		return err
	}
	t.commit()
	return nil
}

// Reset drops every record.
func (s *Store) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	return nil
}

type tx struct {
	customers       txTable[customer.Customer]
	products        txTable[catalog.Product]
	carts           txTable[order.Cart]
	orders          txTable[order.Order]
	rmas            txTable[returns.RMA]
	credits         txTable[payments.StoreCredit]
	charges         txTable[payments.Charge]
	labels          txTable[returns.ReturnLabel]
	expectedReturns txTable[returns.ExpectedReturn]
	shipments       txTable[returns.Shipment]
	emails          txTable[notify.EmailNotification]
}

func (t *tx) commit() {
	t.customers.commit()
	t.products.commit()
	t.carts.commit()
	t.orders.commit()
	t.rmas.commit()
	t.credits.commit()
	t.charges.commit()
	t.labels.commit()
	t.expectedReturns.commit()
	t.shipments.commit()
	t.emails.commit()
}

func (t *tx) Customer(id string) (customer.Customer, error) {
	c, ok := t.customers.get(id)
	if !ok {
		return customer.Customer{}, storage.NotFound("customer", id)
	}
	return c, nil
}

func (t *tx) Customers() []customer.Customer { return t.customers.all() }

func (t *tx) Product(sku string) (catalog.Product, error) {
	p, ok := t.products.get(sku)
	if !ok {
		return catalog.Product{}, storage.NotFound("product", sku)
	}
	return p, nil
}

func (t *tx) Products() []catalog.Product { return t.products.all() }

func (t *tx) Cart(id string) (order.Cart, error) {
	c, ok := t.carts.get(id)
	if !ok {
		return order.Cart{}, storage.NotFound("cart", id)
	}
	return c, nil
}

func (t *tx) Order(id string) (order.Order, error) {
	o, ok := t.orders.get(id)
	if !ok {
		return order.Order{}, storage.NotFound("order", id)
	}
	return o, nil
}

func (t *tx) Orders() []order.Order { return t.orders.all() }

func (t *tx) OrdersByCustomer(customerID string) []order.Order {
	var out []order.Order
	for _, o := range t.orders.all() {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}

func (t *tx) RMA(id string) (returns.RMA, error) {
	r, ok := t.rmas.get(id)
	if !ok {
		return returns.RMA{}, storage.NotFound("rma", id)
	}
	return r, nil
}

func (t *tx) RMAs() []returns.RMA { return t.rmas.all() }

func (t *tx) RMAsByCustomer(customerID string) []returns.RMA {
	var out []returns.RMA
	for _, r := range t.rmas.all() {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out
}

func (t *tx) Credit(id string) (payments.StoreCredit, error) {
	c, ok := t.credits.get(id)
	if !ok {
		return payments.StoreCredit{}, storage.NotFound("credit", id)
	}
	return c, nil
}

func (t *tx) CreditByRMA(rmaID string) (payments.StoreCredit, bool) {
	for _, c := range t.credits.all() {
		if c.RMAID != "" && c.RMAID == rmaID {
			return c, true
		}
	}
	return payments.StoreCredit{}, false
}

func (t *tx) CreditsByCustomer(customerID string) []payments.StoreCredit {
	var out []payments.StoreCredit
	for _, c := range t.credits.all() {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) Charge(id string) (payments.Charge, error) {
	c, ok := t.charges.get(id)
	if !ok {
		return payments.Charge{}, storage.NotFound("charge", id)
	}
	return c, nil
}

func (t *tx) ChargesByOrder(orderID string) []payments.Charge {
	var out []payments.Charge
	for _, c := range t.charges.all() {
		if c.OrderID == orderID {
			out = append(out, c)
		}
	}
	return out
}

func (t *tx) LabelByRMA(rmaID string) (returns.ReturnLabel, bool) {
	for _, l := range t.labels.all() {
		if l.RMAID == rmaID {
			return l, true
		}
	}
	return returns.ReturnLabel{}, false
}

func (t *tx) ExpectedReturnByRMA(rmaID string) (returns.ExpectedReturn, bool) {
	for _, e := range t.expectedReturns.all() {
		if e.RMAID == rmaID {
			return e, true
		}
	}
	return returns.ExpectedReturn{}, false
}

func (t *tx) ExpectedReturns() []returns.ExpectedReturn { return t.expectedReturns.all() }

func (t *tx) Shipment(id string) (returns.Shipment, error) {
	s, ok := t.shipments.get(id)
	if !ok {
		return returns.Shipment{}, storage.NotFound("shipment", id)
	}
	return s, nil
}

func (t *tx) ShipmentByOrder(orderID string) (returns.Shipment, bool) {
	for _, s := range t.shipments.all() {
		if s.OrderID == orderID {
			return s, true
		}
	}
	return returns.Shipment{}, false
}

func (t *tx) Shipments() []returns.Shipment { return t.shipments.all() }

func (t *tx) Emails() []notify.EmailNotification { return t.emails.all() }

func (t *tx) EmailsByCustomer(customerID string) []notify.EmailNotification {
	var out []notify.EmailNotification
	for _, e := range t.emails.all() {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out
}

func (t *tx) PutCustomer(c customer.Customer)           { t.customers.put(c.ID, c) }
func (t *tx) PutProduct(p catalog.Product)              { t.products.put(p.SKU, p) }
func (t *tx) PutCart(c order.Cart)                      { t.carts.put(c.ID, c) }
func (t *tx) PutOrder(o order.Order)                    { t.orders.put(o.ID, o) }
func (t *tx) PutRMA(r returns.RMA)                      { t.rmas.put(r.ID, r) }
func (t *tx) PutCredit(c payments.StoreCredit)          { t.credits.put(c.ID, c) }
func (t *tx) PutCharge(c payments.Charge)               { t.charges.put(c.ID, c) }
func (t *tx) PutLabel(l returns.ReturnLabel)            { t.labels.put(l.ID, l) }
func (t *tx) PutExpectedReturn(e returns.ExpectedReturn) { t.expectedReturns.put(e.ID, e) }
func (t *tx) PutShipment(s returns.Shipment)            { t.shipments.put(s.ID, s) }
func (t *tx) PutEmail(e notify.EmailNotification)       { t.emails.put(e.ID, e) }
