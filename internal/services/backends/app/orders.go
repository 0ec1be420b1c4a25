package app

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/customer"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// GetCustomer returns one customer record.
func (a *App) GetCustomer(ctx context.Context, customerID string) (customer.Customer, error) {
	var out customer.Customer
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		c, err := tx.Customer(customerID)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// UpdateCustomerContact changes a customer's email and phone.
func (a *App) UpdateCustomerContact(ctx context.Context, customerID, email, phone string) (customer.Customer, error) {
	var out customer.Customer
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Customer(customerID)
		if err != nil {
			return err
		}
		c, err = c.UpdateContact(email, phone)
		if err != nil {
			return err
		}
		tx.PutCustomer(c)
		out = c
		return nil
	})
	if err != nil {
		return customer.Customer{}, err
	}
	a.record(ctx, "commerce", "update_customer_contact",
		map[string]string{"customer_id": customerID, "email": email, "phone": phone}, out)
	return out, nil
}

// ListRecentOrders returns a customer's orders, most recent first.
func (a *App) ListRecentOrders(ctx context.Context, customerID string, limit int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []order.Order
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.Customer(customerID); err != nil {
			return err
		}
		out = tx.OrdersByCustomer(customerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlacedAt.After(out[j].PlacedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	a.record(ctx, "commerce", "list_recent_orders",
		map[string]any{"customer_id": customerID, "limit": limit}, out)
	return out, nil
}

// GetOrder returns one order.
func (a *App) GetOrder(ctx context.Context, orderID string) (order.Order, error) {
	var out order.Order
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		o, err := tx.Order(orderID)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	return out, err
}

// CreateCart opens an empty cart for a customer.
func (a *App) CreateCart(ctx context.Context, customerID string) (order.Cart, error) {
	cartID, err := a.newID("CART")
	if err != nil {
		return order.Cart{}, err
	}
	now := a.now()

	var out order.Cart
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Customer(customerID); err != nil {
			return err
		}
		cart := order.Cart{
			ID:         cartID,
			CustomerID: customerID,
			Status:     order.CartStatusOpen,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		tx.PutCart(cart)
		out = cart
		return nil
	})
	if err != nil {
		return order.Cart{}, err
	}
	a.record(ctx, "commerce", "create_cart", map[string]string{"customer_id": customerID}, out)
	return out, nil
}

// GetCart returns one cart with its current totals.
func (a *App) GetCart(ctx context.Context, cartID string) (order.Cart, order.Totals, error) {
	var (
		cart   order.Cart
		totals order.Totals
	)
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		c, err := tx.Cart(cartID)
		if err != nil {
			return err
		}
		cart = c
		totals = order.ComputeTotals(c.Subtotal(), appliedCreditAmount(tx, c))
		return nil
	})
	return cart, totals, err
}

// AddCartItem adds quantity units of a catalog product to an open cart,
// snapshotting the current price.
func (a *App) AddCartItem(ctx context.Context, cartID, sku string, quantity int) (order.Cart, error) {
	now := a.now()

	var out order.Cart
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		cart, err := tx.Cart(cartID)
		if err != nil {
			return err
		}
		p, err := tx.Product(sku)
		if err != nil {
			return err
		}
		cart, err = cart.AddItem(p.SKU, p.Name, quantity, p.Price, now)
		if err != nil {
			return err
		}
		tx.PutCart(cart)
		out = cart
		return nil
	})
	if err != nil {
		return order.Cart{}, err
	}
	a.record(ctx, "commerce", "add_cart_item",
		map[string]any{"cart_id": cartID, "sku": sku, "quantity": quantity}, out)
	return out, nil
}

// RemoveCartItem drops a SKU from an open cart.
func (a *App) RemoveCartItem(ctx context.Context, cartID, sku string) (order.Cart, error) {
	now := a.now()

	var out order.Cart
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		cart, err := tx.Cart(cartID)
		if err != nil {
			return err
		}
		cart, err = cart.RemoveItem(sku, now)
		if err != nil {
			return err
		}
		tx.PutCart(cart)
		out = cart
		return nil
	})
	if err != nil {
		return order.Cart{}, err
	}
	a.record(ctx, "commerce", "remove_cart_item",
		map[string]string{"cart_id": cartID, "sku": sku}, out)
	return out, nil
}

// ApplyStoreCredit attaches an issued credit to an open cart. The credit
// must belong to the cart's customer and a cart takes at most one credit.
func (a *App) ApplyStoreCredit(ctx context.Context, cartID, creditID string) (order.Cart, error) {
	now := a.now()

	var out order.Cart
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		cart, err := tx.Cart(cartID)
		if err != nil {
			return err
		}
		if cart.Status != order.CartStatusOpen {
			return order.ErrCartNotOpen
		}
		if cart.AppliedCredit != "" {
			return platformerrors.WithMetadata(platformerrors.CodeConflict,
				"cart already has a credit applied", map[string]string{
					"cart_id":   cartID,
					"credit_id": cart.AppliedCredit,
				})
		}
		credit, err := tx.Credit(creditID)
		if err != nil {
			return err
		}
		if credit.CustomerID != cart.CustomerID {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidArgument,
				"credit belongs to a different customer", map[string]string{
					"credit_id":   creditID,
					"customer_id": cart.CustomerID,
				})
		}
		credit, err = credit.Apply(cartID, now)
		if err != nil {
			return err
		}

		cart.AppliedCredit = creditID
		cart.UpdatedAt = now
		tx.PutCredit(credit)
		tx.PutCart(cart)
		out = cart
		return nil
	})
	if err != nil {
		return order.Cart{}, err
	}
	a.record(ctx, "commerce", "apply_store_credit",
		map[string]string{"cart_id": cartID, "credit_id": creditID}, out)
	return out, nil
}

// PlaceOrder checks out an open cart: stock is decremented per line, the
// applied credit is priced in, the cart becomes terminal, and a pending
// shipment is queued for the warehouse. All of it happens in one store
// transaction, so a stock failure on any line leaves nothing changed.
func (a *App) PlaceOrder(ctx context.Context, cartID string) (order.Order, error) {
	orderID, err := a.newID("ORD")
	if err != nil {
		return order.Order{}, err
	}
	shipmentID, err := a.newID("SHP")
	if err != nil {
		return order.Order{}, err
	}
	now := a.now()

	var out order.Order
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		cart, err := tx.Cart(cartID)
		if err != nil {
			return err
		}
		if cart.Status != order.CartStatusOpen {
			return order.ErrCartNotOpen
		}
		if len(cart.Items) == 0 {
			return order.ErrCartEmpty
		}

		for _, li := range cart.Items {
			p, err := tx.Product(li.SKU)
			if err != nil {
				return err
			}
			if p.Stock < li.Quantity {
				return platformerrors.WithMetadata(platformerrors.CodeInsufficientStock,
					"insufficient stock", map[string]string{"sku": li.SKU})
			}
			p.Stock -= li.Quantity
			tx.PutProduct(p)
		}

		cart.Status = order.CartStatusCheckedOut
		cart.UpdatedAt = now

		o := order.Order{
			ID:         orderID,
			CustomerID: cart.CustomerID,
			CartID:     cart.ID,
			Status:     order.StatusPlaced,
			Items:      append([]order.LineItem(nil), cart.Items...),
			Totals:     order.ComputeTotals(cart.Subtotal(), appliedCreditAmount(tx, cart)),
			PlacedAt:   now,
		}
		shipment := returns.Shipment{
			ID:        shipmentID,
			OrderID:   orderID,
			Status:    returns.ShipmentPendingRelease,
			CreatedAt: now,
		}

		tx.PutCart(cart)
		tx.PutOrder(o)
		tx.PutShipment(shipment)
		out = o
		return nil
	})
	if err != nil {
		return order.Order{}, err
	}
	a.record(ctx, "commerce", "place_order", map[string]string{"cart_id": cartID}, out)
	return out, nil
}

func appliedCreditAmount(tx storage.ReadTx, cart order.Cart) decimal.Decimal {
	if cart.AppliedCredit == "" {
		return decimal.Zero
	}
	credit, err := tx.Credit(cart.AppliedCredit)
	if err != nil {
		return decimal.Zero
	}
	return credit.Amount
}
