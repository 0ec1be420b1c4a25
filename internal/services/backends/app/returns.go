package app

import (
	"context"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/domain/policy"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// CreateRMAParams identifies the order line being returned.
type CreateRMAParams struct {
	CustomerID string `json:"customer_id"`
	OrderID    string `json:"order_id"`
	SKU        string `json:"sku"`
	ReasonCode string `json:"reason_code"`
}

// CreateRMA evaluates the return policy and opens an RMA in the resulting
// state: APPROVED inside the window, EXCEPTION_APPROVED for discontinued
// products inside the window, REJECTED otherwise. A rejected RMA is still
// persisted and returned without error; the status carries the outcome.
// The approved credit is frozen here as purchase unit price times quantity
// and never changes afterwards.
func (a *App) CreateRMA(ctx context.Context, params CreateRMAParams) (returns.RMA, error) {
	rmaID, err := a.newID("RMA")
	if err != nil {
		return returns.RMA{}, err
	}
	now := a.now()

	var out returns.RMA
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		o, err := tx.Order(params.OrderID)
		if err != nil {
			return err
		}
		if o.CustomerID != params.CustomerID {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidArgument,
				"order does not belong to customer", map[string]string{
					"order_id":    params.OrderID,
					"customer_id": params.CustomerID,
				})
		}
		line, ok := o.Line(params.SKU)
		if !ok {
			return platformerrors.WithMetadata(platformerrors.CodeNotFound,
				"sku not found in order", map[string]string{"order_id": params.OrderID, "sku": params.SKU})
		}
		if o.DeliveredAt == nil {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidState,
				"order has not been delivered", map[string]string{"order_id": params.OrderID})
		}
		p, err := tx.Product(params.SKU)
		if err != nil {
			return err
		}

		ev := policy.Evaluate(p.Lifecycle, params.SKU, policy.DaysSince(*o.DeliveredAt, now), a.windowDays)

		rma := returns.RMA{
			ID:           rmaID,
			OrderID:      params.OrderID,
			CustomerID:   params.CustomerID,
			SKU:          params.SKU,
			ReasonCode:   params.ReasonCode,
			Status:       returns.StatusRequested,
			PolicyReason: string(ev.Reason),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		switch ev.Decision {
		case policy.DecisionEligible:
			rma, err = rma.Transition(returns.StatusApproved, now)
		case policy.DecisionExceptionRequired:
			rma, err = rma.Transition(returns.StatusExceptionApproved, now)
		default:
			rma, err = rma.Transition(returns.StatusRejected, now)
		}
		if err != nil {
			return err
		}
		if rma.Status.Approved() {
			rma.ApprovedCredit = line.LineTotal()
		}

		if rma.Status.Approved() && o.Status.CanTransitionTo(order.StatusReturnRequested) {
			o, err = o.Transition(order.StatusReturnRequested, now)
			if err != nil {
				return err
			}
			tx.PutOrder(o)
		}

		tx.PutRMA(rma)
		out = rma
		return nil
	})
	if err != nil {
		return returns.RMA{}, err
	}
	a.record(ctx, "commerce", "create_rma", params, out)
	return out, nil
}

// GetRMA returns one RMA.
func (a *App) GetRMA(ctx context.Context, rmaID string) (returns.RMA, error) {
	var out returns.RMA
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		r, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	return out, err
}

// ListRMAs returns RMAs, optionally filtered to one customer.
func (a *App) ListRMAs(ctx context.Context, customerID string) ([]returns.RMA, error) {
	var out []returns.RMA
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		if customerID == "" {
			out = tx.RMAs()
			return nil
		}
		out = tx.RMAsByCustomer(customerID)
		return nil
	})
	return out, err
}

// GenerateLabel issues a prepaid return label for an approved RMA and
// moves it to LABEL_GENERATED. Repeat calls return the existing label.
func (a *App) GenerateLabel(ctx context.Context, rmaID, carrier string) (returns.ReturnLabel, error) {
	if carrier == "" {
		carrier = "USPS"
	}
	labelID, err := a.newID("LBL")
	if err != nil {
		return returns.ReturnLabel{}, err
	}
	trackingID, err := a.newID("TRK")
	if err != nil {
		return returns.ReturnLabel{}, err
	}
	now := a.now()

	var out returns.ReturnLabel
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		rma, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		if existing, ok := tx.LabelByRMA(rmaID); ok {
			out = existing
			return nil
		}
		if rma.Status == returns.StatusRejected {
			return platformerrors.WithMetadata(platformerrors.CodePolicyRejected,
				"rma was rejected by policy", map[string]string{"rma_id": rmaID})
		}
		rma, err = rma.Transition(returns.StatusLabelGenerated, now)
		if err != nil {
			return err
		}

		label := returns.ReturnLabel{
			ID:             labelID,
			RMAID:          rmaID,
			TrackingNumber: trackingID,
			Carrier:        carrier,
			LabelURL:       "https://returns.example.com/labels/" + labelID + ".pdf",
			CreatedAt:      now,
		}
		tx.PutLabel(label)
		tx.PutRMA(rma)
		out = label
		return nil
	})
	if err != nil {
		return returns.ReturnLabel{}, err
	}
	a.record(ctx, "returns", "generate_label", map[string]string{"rma_id": rmaID, "carrier": carrier}, out)
	return out, nil
}

// RegisterExpectedReturn tells the warehouse to expect the RMA's product
// back. Valid only for approved RMAs that have not yet been received;
// repeat calls return the existing record. Discontinued and end-of-life
// products carry an override reason so receiving staff accept stock that
// is no longer sold.
func (a *App) RegisterExpectedReturn(ctx context.Context, rmaID, overrideReason string) (returns.ExpectedReturn, error) {
	retID, err := a.newID("RET")
	if err != nil {
		return returns.ExpectedReturn{}, err
	}
	now := a.now()

	var out returns.ExpectedReturn
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		rma, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		if existing, ok := tx.ExpectedReturnByRMA(rmaID); ok {
			out = existing
			return nil
		}
		switch rma.Status {
		case returns.StatusApproved, returns.StatusExceptionApproved, returns.StatusLabelGenerated:
		case returns.StatusRejected:
			return platformerrors.WithMetadata(platformerrors.CodePolicyRejected,
				"rma was rejected by policy", map[string]string{"rma_id": rmaID})
		default:
			return platformerrors.WithMetadata(platformerrors.CodeInvalidState,
				"rma not awaiting return", map[string]string{"rma_id": rmaID, "status": string(rma.Status)})
		}

		o, err := tx.Order(rma.OrderID)
		if err != nil {
			return err
		}
		line, ok := o.Line(rma.SKU)
		if !ok {
			return platformerrors.WithMetadata(platformerrors.CodeNotFound,
				"sku not found in order", map[string]string{"order_id": rma.OrderID, "sku": rma.SKU})
		}
		if overrideReason == "" {
			if p, err := tx.Product(rma.SKU); err == nil && p.Lifecycle.ExceptionRequired() {
				overrideReason = "DISCONTINUED_ITEM_EXCEPTION"
			}
		}

		expected := returns.ExpectedReturn{
			ID:             retID,
			RMAID:          rmaID,
			SKU:            rma.SKU,
			Quantity:       line.Quantity,
			OverrideReason: overrideReason,
			Status:         returns.ExpectedReturnExpected,
			CreatedAt:      now,
		}
		tx.PutExpectedReturn(expected)
		out = expected
		return nil
	})
	if err != nil {
		return returns.ExpectedReturn{}, err
	}
	a.record(ctx, "wms", "register_expected_return",
		map[string]string{"rma_id": rmaID, "override_reason": overrideReason}, out)
	return out, nil
}

// ReceiveReturn marks the expected return as received at the warehouse and
// moves the RMA to RECEIVED_AT_WAREHOUSE.
func (a *App) ReceiveReturn(ctx context.Context, rmaID string) (returns.RMA, error) {
	now := a.now()

	var out returns.RMA
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		rma, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		expected, ok := tx.ExpectedReturnByRMA(rmaID)
		if !ok {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidState,
				"no expected return registered", map[string]string{"rma_id": rmaID})
		}
		if expected.Status == returns.ExpectedReturnReceived {
			return platformerrors.WithMetadata(platformerrors.CodeConflict,
				"return already received", map[string]string{"rma_id": rmaID})
		}
		rma, err = rma.Transition(returns.StatusReceivedAtWarehouse, now)
		if err != nil {
			return err
		}

		expected.Status = returns.ExpectedReturnReceived
		at := now
		expected.ReceivedAt = &at
		tx.PutExpectedReturn(expected)
		tx.PutRMA(rma)
		out = rma
		return nil
	})
	if err != nil {
		return returns.RMA{}, err
	}
	a.record(ctx, "wms", "receive_return", map[string]string{"rma_id": rmaID}, out)
	return out, nil
}

// CloseRMA moves an RMA to its terminal CLOSED state.
func (a *App) CloseRMA(ctx context.Context, rmaID string) (returns.RMA, error) {
	now := a.now()

	var out returns.RMA
	err := a.store.Update(ctx, func(tx storage.Tx) error {
		rma, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		rma, err = rma.Transition(returns.StatusClosed, now)
		if err != nil {
			return err
		}
		tx.PutRMA(rma)
		out = rma
		return nil
	})
	if err != nil {
		return returns.RMA{}, err
	}
	a.record(ctx, "commerce", "close_rma", map[string]string{"rma_id": rmaID}, out)
	return out, nil
}

// ListExpectedReturns returns every expected-return record.
func (a *App) ListExpectedReturns(ctx context.Context) ([]returns.ExpectedReturn, error) {
	var out []returns.ExpectedReturn
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		out = tx.ExpectedReturns()
		return nil
	})
	return out, err
}
