package otel

import (
	"context"
	"testing"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("HOMESTREAM_OTEL_ENDPOINT", "")

	shutdown, err := Setup(context.Background(), "backends")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupDisabledByFlag(t *testing.T) {
	t.Setenv("HOMESTREAM_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("HOMESTREAM_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "backends")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
