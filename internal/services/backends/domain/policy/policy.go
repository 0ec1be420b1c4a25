// Package policy evaluates return eligibility.
//
// Evaluation is a pure function of days elapsed since delivery, the product
// lifecycle state, and the configured return window. Callers supply the
// elapsed days themselves so the policy can be probed speculatively; the
// policy never mutates anything.
package policy

import (
	"time"

	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
)

// Decision is the outcome of a return-eligibility check.
type Decision string

const (
	DecisionEligible          Decision = "ELIGIBLE"
	DecisionExceptionRequired Decision = "EXCEPTION_REQUIRED"
	DecisionIneligible        Decision = "INELIGIBLE"
)

// Reason explains a decision with a stable machine-readable code.
type Reason string

const (
	ReasonWithinWindow        Reason = "WITHIN_WINDOW"
	ReasonProductDiscontinued Reason = "PRODUCT_DISCONTINUED"
	ReasonWindowExpired       Reason = "WINDOW_EXPIRED"
)

// Evaluation carries a decision together with its reason and the data used
// to reach it, so callers can surface an explanation.
type Evaluation struct {
	Decision       Decision `json:"decision"`
	Reason         Reason   `json:"reason"`
	DaysSince      int      `json:"days_since_delivery"`
	WindowDays     int      `json:"window_days"`
	ProductSKU     string   `json:"product_sku"`
	LifecycleState string   `json:"lifecycle_status"`
}

// Evaluate applies the return policy to one order line.
//
// Discontinued and end-of-life products always go down the exception path,
// no matter how long ago delivery happened; the exception exists to let an
// agent approve what the window alone would reject. The boundary day counts
// as inside the window.
func Evaluate(lifecycle catalog.Lifecycle, sku string, daysSinceDelivery, windowDays int) Evaluation {
	ev := Evaluation{
		DaysSince:      daysSinceDelivery,
		WindowDays:     windowDays,
		ProductSKU:     sku,
		LifecycleState: string(lifecycle),
	}
	switch {
	case lifecycle.ExceptionRequired():
		ev.Decision = DecisionExceptionRequired
		ev.Reason = ReasonProductDiscontinued
	case daysSinceDelivery <= windowDays:
		ev.Decision = DecisionEligible
		ev.Reason = ReasonWithinWindow
	default:
		ev.Decision = DecisionIneligible
		ev.Reason = ReasonWindowExpired
	}
	return ev
}

// DaysSince converts a delivery timestamp into whole days elapsed at now.
func DaysSince(deliveredAt, now time.Time) int {
	return int(now.Sub(deliveredAt).Hours() / 24)
}
