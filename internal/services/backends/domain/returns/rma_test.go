package returns

import (
	"testing"
	"time"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusRequested, StatusApproved, true},
		{StatusRequested, StatusExceptionApproved, true},
		{StatusRequested, StatusRejected, true},
		{StatusRequested, StatusCreditIssued, false},
		{StatusApproved, StatusLabelGenerated, true},
		{StatusApproved, StatusReceivedAtWarehouse, true},
		{StatusApproved, StatusCreditIssued, true},
		{StatusExceptionApproved, StatusLabelGenerated, true},
		{StatusExceptionApproved, StatusCreditIssued, true},
		{StatusLabelGenerated, StatusReceivedAtWarehouse, true},
		{StatusLabelGenerated, StatusCreditIssued, true},
		{StatusLabelGenerated, StatusApproved, false},
		{StatusReceivedAtWarehouse, StatusCreditIssued, true},
		{StatusReceivedAtWarehouse, StatusClosed, true},
		{StatusCreditIssued, StatusClosed, true},
		{StatusCreditIssued, StatusCreditIssued, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusClosed, false},
		{StatusClosed, StatusCreditIssued, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusClosed} {
		if !s.IsTerminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusRequested, StatusApproved, StatusCreditIssued} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestStatusApproved(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusExceptionApproved, StatusLabelGenerated, StatusReceivedAtWarehouse, StatusCreditIssued} {
		if !s.Approved() {
			t.Fatalf("%s should count as approved", s)
		}
	}
	for _, s := range []Status{StatusRequested, StatusRejected, StatusClosed} {
		if s.Approved() {
			t.Fatalf("%s should not count as approved", s)
		}
	}
}

func TestRMATransition(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	rma := RMA{ID: "RMA-AB12CD34", Status: StatusRequested, CreatedAt: now, UpdatedAt: now}

	later := now.Add(time.Hour)
	rma, err := rma.Transition(StatusExceptionApproved, later)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if rma.Status != StatusExceptionApproved {
		t.Fatalf("status = %q, want %q", rma.Status, StatusExceptionApproved)
	}
	if !rma.UpdatedAt.Equal(later) {
		t.Fatalf("UpdatedAt = %v, want %v", rma.UpdatedAt, later)
	}

	_, err = rma.Transition(StatusRequested, later)
	if !platformerrors.IsCode(err, platformerrors.CodeInvalidState) {
		t.Fatalf("err = %v, want %s", err, platformerrors.CodeInvalidState)
	}
}

func TestShipmentStatusTransitions(t *testing.T) {
	if !ShipmentPendingRelease.CanTransitionTo(ShipmentReleased) {
		t.Fatal("PENDING_RELEASE -> RELEASED should be allowed")
	}
	if !ShipmentReleased.CanTransitionTo(ShipmentDelivered) {
		t.Fatal("RELEASED -> DELIVERED should be allowed")
	}
	if ShipmentPendingRelease.CanTransitionTo(ShipmentDelivered) {
		t.Fatal("PENDING_RELEASE must be released before delivery")
	}
	if ShipmentDelivered.CanTransitionTo(ShipmentReleased) {
		t.Fatal("DELIVERED is terminal")
	}
}
