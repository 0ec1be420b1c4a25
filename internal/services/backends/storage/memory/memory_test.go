package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

func TestUpdateCommits(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutProduct(catalog.Product{SKU: "RTR-AX5400", Name: "AX5400", Stock: 45})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = store.View(ctx, func(tx storage.ReadTx) error {
		p, err := tx.Product("RTR-AX5400")
		if err != nil {
			return err
		}
		if p.Stock != 45 {
			t.Fatalf("stock = %d, want 45", p.Stock)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("boom")

	err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutProduct(catalog.Product{SKU: "RTR-AX5400"})
		tx.PutCart(order.Cart{ID: "CART-1", Status: order.CartStatusOpen})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	err = store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.Product("RTR-AX5400"); !platformerrors.IsCode(err, platformerrors.CodeNotFound) {
			t.Fatalf("product err = %v, want not found after rollback", err)
		}
		if _, err := tx.Cart("CART-1"); !platformerrors.IsCode(err, platformerrors.CodeNotFound) {
			t.Fatalf("cart err = %v, want not found after rollback", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestTransactionSeesOwnWrites(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutProduct(catalog.Product{SKU: "RTR-AX5400", Stock: 10})
		p, err := tx.Product("RTR-AX5400")
		if err != nil {
			return err
		}
		p.Stock--
		tx.PutProduct(p)
		p, err = tx.Product("RTR-AX5400")
		if err != nil {
			return err
		}
		if p.Stock != 9 {
			t.Fatalf("stock inside tx = %d, want 9", p.Stock)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := New()

	seed := order.Cart{
		ID:     "CART-1",
		Status: order.CartStatusOpen,
		Items: []order.LineItem{
			{SKU: "RTR-AX5400", Quantity: 1, UnitPrice: decimal.RequireFromString("199.99")},
		},
	}
	if err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutCart(seed)
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := store.View(ctx, func(tx storage.ReadTx) error {
		c, err := tx.Cart("CART-1")
		if err != nil {
			return err
		}
		c.Items[0].Quantity = 99
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}

	if err := store.View(ctx, func(tx storage.ReadTx) error {
		c, err := tx.Cart("CART-1")
		if err != nil {
			return err
		}
		if c.Items[0].Quantity != 1 {
			t.Fatalf("stored quantity = %d, mutation leaked through read copy", c.Items[0].Quantity)
		}
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestViewHidesWriteMethods(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.View(ctx, func(tx storage.ReadTx) error {
		if _, ok := tx.(storage.Tx); ok {
			t.Fatal("read transaction can be asserted to the writable interface")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := New()

	if err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutProduct(catalog.Product{SKU: "RTR-AX5400"})
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := store.View(ctx, func(tx storage.ReadTx) error {
		if got := len(tx.Products()); got != 0 {
			t.Fatalf("products after reset = %d, want 0", got)
		}
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	store := New()

	if err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutProduct(catalog.Product{SKU: "RTR-AX5400", Stock: 100})
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, func(tx storage.Tx) error {
				p, err := tx.Product("RTR-AX5400")
				if err != nil {
					return err
				}
				p.Stock--
				tx.PutProduct(p)
				return nil
			})
		}()
	}
	wg.Wait()

	if err := store.View(ctx, func(tx storage.ReadTx) error {
		p, err := tx.Product("RTR-AX5400")
		if err != nil {
			return err
		}
		if p.Stock != 0 {
			t.Fatalf("stock = %d, want 0 after 100 serialized decrements", p.Stock)
		}
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.View(ctx, func(storage.ReadTx) error { return nil }); err == nil {
		t.Fatal("View with cancelled context should fail")
	}
	if err := store.Update(ctx, func(storage.Tx) error { return nil }); err == nil {
		t.Fatal("Update with cancelled context should fail")
	}
}
