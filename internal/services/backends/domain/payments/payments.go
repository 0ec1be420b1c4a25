// Package payments models store credits and charges.
package payments

import (
	"time"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
)

// CreditStatus tracks a store credit.
type CreditStatus string

const (
	CreditIssued  CreditStatus = "ISSUED"
	CreditApplied CreditStatus = "APPLIED"
	CreditExpired CreditStatus = "EXPIRED"
)

// CanTransitionTo reports whether a credit status change is allowed.
func (s CreditStatus) CanTransitionTo(target CreditStatus) bool {
	switch s {
	case CreditIssued:
		return target == CreditApplied || target == CreditExpired
	default:
		return false
	}
}

// StoreCredit is customer money held on account. RMAID is empty for
// manually issued credits; at most one credit may originate from a given
// RMA.
type StoreCredit struct {
	ID         string          `json:"credit_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	RMAID      string          `json:"rma_id,omitempty"`
	Status     CreditStatus    `json:"status"`
	IssuedAt   time.Time       `json:"issued_at"`
	AppliedAt  *time.Time      `json:"applied_at,omitempty"`
	CartID     string          `json:"applied_cart_id,omitempty"`
}

// Apply marks the credit as spent on a cart.
func (c StoreCredit) Apply(cartID string, now time.Time) (StoreCredit, error) {
	if !c.Status.CanTransitionTo(CreditApplied) {
		return c, platformerrors.WithMetadata(platformerrors.CodeInvalidState,
			"credit is not available", map[string]string{
				"credit_id": c.ID,
				"status":    string(c.Status),
			})
	}
	c.Status = CreditApplied
	c.CartID = cartID
	at := now
	c.AppliedAt = &at
	return c, nil
}

// ChargeStatus tracks a payment charge.
type ChargeStatus string

const (
	ChargeCaptured ChargeStatus = "CAPTURED"
	ChargeRefunded ChargeStatus = "REFUNDED"
)

// Charge records the payment captured for an order.
type Charge struct {
	ID         string          `json:"charge_id"`
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     ChargeStatus    `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
