package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeNotFound, "record not found")
	wrapped := fmt.Errorf("lookup order: %w", WithMetadata(CodeNotFound, "order missing", map[string]string{"order_id": "ORD-1"}))

	if !errors.Is(wrapped, sentinel) {
		t.Fatal("expected wrapped error to match sentinel by code")
	}
	if errors.Is(wrapped, New(CodeConflict, "conflict")) {
		t.Fatal("expected mismatched code to not match")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeInvalidState, "cart is checked out")); got != CodeInvalidState {
		t.Fatalf("expected INVALID_STATE, got %q", got)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN for plain error, got %q", got)
	}
	if got := GetCode(nil); got != CodeUnknown {
		t.Fatalf("expected UNKNOWN for nil error, got %q", got)
	}
}

func TestGetMetadata(t *testing.T) {
	err := WithMetadata(CodeNotFound, "sku missing", map[string]string{"sku": "RTR-AC1900"})
	meta := GetMetadata(fmt.Errorf("catalog: %w", err))
	if meta["sku"] != "RTR-AC1900" {
		t.Fatalf("expected sku metadata, got %v", meta)
	}
	if GetMetadata(errors.New("plain")) != nil {
		t.Fatal("expected nil metadata for plain error")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeUnknown, "wrapped", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := map[Code]codes.Code{
		CodeNotFound:          codes.NotFound,
		CodeInvalidState:      codes.FailedPrecondition,
		CodePolicyRejected:    codes.FailedPrecondition,
		CodeConflict:          codes.AlreadyExists,
		CodeInsufficientStock: codes.AlreadyExists,
		CodeInvalidArgument:   codes.InvalidArgument,
		CodeUnknown:           codes.Unknown,
	}
	for code, want := range cases {
		if got := code.GRPCCode(); got != want {
			t.Fatalf("code %q: expected %v, got %v", code, want, got)
		}
	}
}
