// Package returns models RMAs and the warehouse-side return flow.
package returns

import (
	"time"

	"github.com/shopspring/decimal"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
)

// Status tracks an RMA through the return flow. Rejected and closed RMAs
// are terminal; records are never deleted.
type Status string

const (
	StatusRequested           Status = "REQUESTED"
	StatusApproved            Status = "APPROVED"
	StatusExceptionApproved   Status = "EXCEPTION_APPROVED"
	StatusRejected            Status = "REJECTED"
	StatusLabelGenerated      Status = "LABEL_GENERATED"
	StatusReceivedAtWarehouse Status = "RECEIVED_AT_WAREHOUSE"
	StatusCreditIssued        Status = "CREDIT_ISSUED"
	StatusClosed              Status = "CLOSED"
)

// CanTransitionTo reports whether an RMA status change is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusRequested:
		return target == StatusApproved || target == StatusExceptionApproved || target == StatusRejected
	case StatusApproved, StatusExceptionApproved:
		return target == StatusLabelGenerated || target == StatusReceivedAtWarehouse ||
			target == StatusCreditIssued || target == StatusClosed
	case StatusLabelGenerated:
		return target == StatusReceivedAtWarehouse || target == StatusCreditIssued || target == StatusClosed
	case StatusReceivedAtWarehouse:
		return target == StatusCreditIssued || target == StatusClosed
	case StatusCreditIssued:
		return target == StatusClosed
	default:
		return false
	}
}

// IsTerminal reports whether the RMA can change no further.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusClosed
}

// Approved reports whether the RMA has passed policy, via the plain or the
// exception path.
func (s Status) Approved() bool {
	switch s {
	case StatusApproved, StatusExceptionApproved, StatusLabelGenerated,
		StatusReceivedAtWarehouse, StatusCreditIssued:
		return true
	default:
		return false
	}
}

// RMA is a return merchandise authorization for a single order line.
// ApprovedCredit is set once at approval and immutable thereafter.
type RMA struct {
	ID             string          `json:"rma_id"`
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	SKU            string          `json:"sku"`
	ReasonCode     string          `json:"reason_code"`
	Status         Status          `json:"status"`
	ApprovedCredit decimal.Decimal `json:"approved_credit"`
	PolicyReason   string          `json:"policy_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Transition moves the RMA to target, enforcing the status table.
func (r RMA) Transition(target Status, now time.Time) (RMA, error) {
	if !r.Status.CanTransitionTo(target) {
		return r, platformerrors.WithMetadata(platformerrors.CodeInvalidState,
			"invalid rma status transition", map[string]string{
				"rma_id": r.ID,
				"from":   string(r.Status),
				"to":     string(target),
			})
	}
	r.Status = target
	r.UpdatedAt = now
	return r, nil
}
