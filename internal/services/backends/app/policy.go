package app

import (
	"context"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/policy"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// EvaluateReturn runs the return policy for one order line, with the days
// since delivery supplied by the caller so timelines can be probed
// speculatively. The order must contain the SKU and belong to a known
// customer. Nothing is written.
func (a *App) EvaluateReturn(ctx context.Context, orderID, sku string, daysSinceDelivery int) (policy.Evaluation, error) {
	if daysSinceDelivery < 0 {
		return policy.Evaluation{}, platformerrors.New(platformerrors.CodeInvalidArgument,
			"days since delivery must not be negative")
	}
	var out policy.Evaluation
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		o, err := tx.Order(orderID)
		if err != nil {
			return err
		}
		if _, err := tx.Customer(o.CustomerID); err != nil {
			return err
		}
		if !o.ContainsSKU(sku) {
			return platformerrors.WithMetadata(platformerrors.CodeNotFound,
				"sku not found in order", map[string]string{"order_id": orderID, "sku": sku})
		}
		p, err := tx.Product(sku)
		if err != nil {
			return err
		}
		out = policy.Evaluate(p.Lifecycle, sku, daysSinceDelivery, a.windowDays)
		return nil
	})
	if err != nil {
		return policy.Evaluation{}, err
	}
	a.record(ctx, "policy", "evaluate_return",
		map[string]any{"order_id": orderID, "sku": sku, "days_since_delivery": daysSinceDelivery}, out)
	return out, nil
}
