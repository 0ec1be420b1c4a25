package app

import (
	"context"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/payments"
	"github.com/louisbranch/homestream/internal/services/backends/domain/returns"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// IssueCredit issues store credit for an RMA. It is idempotent keyed by
// RMA id: concurrent or repeated calls yield the one existing credit, and
// the RMA moves to CREDIT_ISSUED exactly once. A zero amount defaults to
// the RMA's approved credit; anything above it is refused.
func (a *App) IssueCredit(ctx context.Context, rmaID string, amount decimal.Decimal) (payments.StoreCredit, error) {
	creditID, err := a.newID("CRD")
	if err != nil {
		return payments.StoreCredit{}, err
	}
	now := a.now()

	var out payments.StoreCredit
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		rma, err := tx.RMA(rmaID)
		if err != nil {
			return err
		}
		if existing, ok := tx.CreditByRMA(rmaID); ok {
			out = existing
			return nil
		}
		if rma.Status == returns.StatusRejected {
			return platformerrors.WithMetadata(platformerrors.CodePolicyRejected,
				"rma was rejected by policy", map[string]string{"rma_id": rmaID})
		}
		if !rma.Status.CanTransitionTo(returns.StatusCreditIssued) {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidState,
				"rma not eligible for credit", map[string]string{
					"rma_id": rmaID,
					"status": string(rma.Status),
				})
		}

		if amount.IsZero() {
			amount = rma.ApprovedCredit
		}
		if !amount.IsPositive() {
			return platformerrors.New(platformerrors.CodeInvalidArgument, "amount must be positive")
		}
		if amount.GreaterThan(rma.ApprovedCredit) {
			return platformerrors.WithMetadata(platformerrors.CodeInvalidArgument,
				"amount exceeds approved credit", map[string]string{
					"rma_id":   rmaID,
					"approved": rma.ApprovedCredit.String(),
				})
		}

		rma, err = rma.Transition(returns.StatusCreditIssued, now)
		if err != nil {
			return err
		}
		credit := payments.StoreCredit{
			ID:         creditID,
			CustomerID: rma.CustomerID,
			Amount:     amount,
			RMAID:      rmaID,
			Status:     payments.CreditIssued,
			IssuedAt:   now,
		}
		tx.PutCredit(credit)
		tx.PutRMA(rma)
		out = credit
		return nil
	})
	if err != nil {
		return payments.StoreCredit{}, err
	}
	a.record(ctx, "payments", "issue_credit",
		map[string]string{"rma_id": rmaID, "amount": amount.String()}, out)
	return out, nil
}

// IssueManualCredit issues store credit with no originating RMA.
func (a *App) IssueManualCredit(ctx context.Context, customerID string, amount decimal.Decimal, reason string) (payments.StoreCredit, error) {
	creditID, err := a.newID("CRD")
	if err != nil {
		return payments.StoreCredit{}, err
	}
	now := a.now()

	var out payments.StoreCredit
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		if _, err := tx.Customer(customerID); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return platformerrors.New(platformerrors.CodeInvalidArgument, "amount must be positive")
		}
		credit := payments.StoreCredit{
			ID:         creditID,
			CustomerID: customerID,
			Amount:     amount,
			Status:     payments.CreditIssued,
			IssuedAt:   now,
		}
		tx.PutCredit(credit)
		out = credit
		return nil
	})
	if err != nil {
		return payments.StoreCredit{}, err
	}
	a.record(ctx, "payments", "issue_manual_credit",
		map[string]string{"customer_id": customerID, "amount": amount.String(), "reason": reason}, out)
	return out, nil
}

// GetCredit returns one store credit.
func (a *App) GetCredit(ctx context.Context, creditID string) (payments.StoreCredit, error) {
	var out payments.StoreCredit
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		c, err := tx.Credit(creditID)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// ListCredits returns a customer's store credits.
func (a *App) ListCredits(ctx context.Context, customerID string) ([]payments.StoreCredit, error) {
	var out []payments.StoreCredit
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		if _, err := tx.Customer(customerID); err != nil {
			return err
		}
		out = tx.CreditsByCustomer(customerID)
		return nil
	})
	return out, err
}

// ChargeOrder captures the order's remaining balance. One charge per
// order; a repeat call returns the existing charge.
func (a *App) ChargeOrder(ctx context.Context, orderID string) (payments.Charge, error) {
	chargeID, err := a.newID("CHG")
	if err != nil {
		return payments.Charge{}, err
	}
	now := a.now()

	var out payments.Charge
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		o, err := tx.Order(orderID)
		if err != nil {
			return err
		}
		if existing := tx.ChargesByOrder(orderID); len(existing) > 0 {
			out = existing[0]
			return nil
		}
		charge := payments.Charge{
			ID:         chargeID,
			OrderID:    orderID,
			CustomerID: o.CustomerID,
			Amount:     o.Totals.Total,
			Status:     payments.ChargeCaptured,
			CreatedAt:  now,
		}
		tx.PutCharge(charge)
		out = charge
		return nil
	})
	if err != nil {
		return payments.Charge{}, err
	}
	a.record(ctx, "payments", "charge_order", map[string]string{"order_id": orderID}, out)
	return out, nil
}
