package policy

import (
	"testing"
	"time"

	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
)

func TestEvaluateWithinWindow(t *testing.T) {
	ev := Evaluate(catalog.LifecycleActive, "RTR-AX5400", 12, 30)
	if ev.Decision != DecisionEligible {
		t.Fatalf("decision = %q, want %q", ev.Decision, DecisionEligible)
	}
	if ev.Reason != ReasonWithinWindow {
		t.Fatalf("reason = %q, want %q", ev.Reason, ReasonWithinWindow)
	}
	if ev.DaysSince != 12 {
		t.Fatalf("days since delivery = %d, want 12", ev.DaysSince)
	}
}

func TestEvaluateDiscontinuedInsideWindow(t *testing.T) {
	ev := Evaluate(catalog.LifecycleDiscontinued, "RTR-AC1900", 12, 30)
	if ev.Decision != DecisionExceptionRequired {
		t.Fatalf("decision = %q, want %q", ev.Decision, DecisionExceptionRequired)
	}
	if ev.Reason != ReasonProductDiscontinued {
		t.Fatalf("reason = %q, want %q", ev.Reason, ReasonProductDiscontinued)
	}
}

func TestEvaluateWindowExpired(t *testing.T) {
	ev := Evaluate(catalog.LifecycleActive, "RTR-AX5400", 45, 30)
	if ev.Decision != DecisionIneligible {
		t.Fatalf("decision = %q, want %q", ev.Decision, DecisionIneligible)
	}
	if ev.Reason != ReasonWindowExpired {
		t.Fatalf("reason = %q, want %q", ev.Reason, ReasonWindowExpired)
	}
}

func TestEvaluateDiscontinuedOutsideWindow(t *testing.T) {
	// Lifecycle dominates the window: a discontinued product stays on the
	// exception path no matter how long ago delivery happened.
	ev := Evaluate(catalog.LifecycleEOL, "RTR-AC1900", 45, 30)
	if ev.Decision != DecisionExceptionRequired {
		t.Fatalf("decision = %q, want %q", ev.Decision, DecisionExceptionRequired)
	}
	if ev.Reason != ReasonProductDiscontinued {
		t.Fatalf("reason = %q, want %q", ev.Reason, ReasonProductDiscontinued)
	}
}

func TestEvaluateBoundaryDay(t *testing.T) {
	// The boundary day counts as inside the window.
	ev := Evaluate(catalog.LifecycleActive, "RTR-AX5400", 30, 30)
	if ev.Decision != DecisionEligible {
		t.Fatalf("decision = %q, want %q", ev.Decision, DecisionEligible)
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	delivered := now.AddDate(0, 0, -12)
	if got := DaysSince(delivered, now); got != 12 {
		t.Fatalf("days since = %d, want 12", got)
	}
}
