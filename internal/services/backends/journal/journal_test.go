package journal

import (
	"context"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	j.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	params := map[string]string{"sku": "RTR-AX5400"}
	response := map[string]int{"stock": 45}
	if err := j.Record(ctx, "erp", "check_availability", params, response); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(ctx, "commerce", "create_cart", nil, nil); err != nil {
		t.Fatalf("Record nil payloads: %v", err)
	}

	entries, err := j.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Operation != "create_cart" {
		t.Fatalf("first entry = %q, want create_cart", entries[0].Operation)
	}
	if string(entries[0].Params) != "{}" {
		t.Fatalf("nil params recorded as %q, want {}", entries[0].Params)
	}
	if entries[1].System != "erp" {
		t.Fatalf("system = %q, want erp", entries[1].System)
	}
	if string(entries[1].Params) != `{"sku":"RTR-AX5400"}` {
		t.Fatalf("params = %s", entries[1].Params)
	}
}

func TestListFiltersBySystem(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	for i := 0; i < 3; i++ {
		if err := j.Record(ctx, "erp", "check_availability", nil, nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := j.Record(ctx, "wms", "release_shipment", nil, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := j.List(ctx, "erp", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("erp entries = %d, want 3", len(entries))
	}

	entries, err = j.List(ctx, "erp", 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limited entries = %d, want 2", len(entries))
	}
}
