package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLifecycle(t *testing.T) {
	cases := []struct {
		in   string
		want Lifecycle
		ok   bool
	}{
		{"ACTIVE", LifecycleActive, true},
		{"active", LifecycleActive, true},
		{" clearance ", LifecycleClearance, true},
		{"DISCONTINUED", LifecycleDiscontinued, true},
		{"EOL", LifecycleEOL, true},
		{"END_OF_LIFE", LifecycleEOL, true},
		{"retired", LifecycleUnspecified, false},
		{"", LifecycleUnspecified, false},
	}
	for _, tc := range cases {
		got, ok := ParseLifecycle(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLifecycle(%q) = %q, %v, want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLifecycleExceptionRequired(t *testing.T) {
	if LifecycleActive.ExceptionRequired() {
		t.Fatal("ACTIVE should not require an exception")
	}
	if LifecycleClearance.ExceptionRequired() {
		t.Fatal("CLEARANCE should not require an exception")
	}
	if !LifecycleDiscontinued.ExceptionRequired() {
		t.Fatal("DISCONTINUED should require an exception")
	}
	if !LifecycleEOL.ExceptionRequired() {
		t.Fatal("EOL should require an exception")
	}
}

func TestFiltersMatches(t *testing.T) {
	product := Product{
		SKU:          "RTR-AX5400",
		Name:         "HomeStream AX5400 WiFi 6 Router",
		Category:     CategoryRouters,
		Price:        decimal.RequireFromString("199.99"),
		WifiStandard: 6,
		Tags:         []string{"wifi-6", "gaming"},
		Description:  "Dual-band WiFi 6 router for large homes",
		Lifecycle:    LifecycleActive,
		Stock:        45,
	}

	cases := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"empty filters", Filters{}, true},
		{"query on name", Filters{Query: "ax5400"}, true},
		{"query on tag", Filters{Query: "gaming"}, true},
		{"query miss", Filters{Query: "mesh extender"}, false},
		{"category match", Filters{Category: CategoryRouters}, true},
		{"category miss", Filters{Category: CategoryModems}, false},
		{"min price below", Filters{MinPrice: decimal.RequireFromString("100")}, true},
		{"min price above", Filters{MinPrice: decimal.RequireFromString("250")}, false},
		{"max price above", Filters{MaxPrice: decimal.RequireFromString("250")}, true},
		{"max price below", Filters{MaxPrice: decimal.RequireFromString("100")}, false},
		{"wifi standard match", Filters{WifiStandard: 6}, true},
		{"wifi standard miss", Filters{WifiStandard: 7}, false},
		{"in stock", Filters{InStockOnly: true}, true},
		{"lifecycle match", Filters{Lifecycle: LifecycleActive}, true},
		{"lifecycle miss", Filters{Lifecycle: LifecycleDiscontinued}, false},
	}
	for _, tc := range cases {
		if got := tc.filters.Matches(product); got != tc.want {
			t.Fatalf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFiltersInStockOnly(t *testing.T) {
	out := Product{SKU: "RTR-AC1900", Stock: 0, Lifecycle: LifecycleDiscontinued}
	if (Filters{InStockOnly: true}).Matches(out) {
		t.Fatal("out-of-stock product should not match InStockOnly filter")
	}
	if !(Filters{}).Matches(out) {
		t.Fatal("out-of-stock product should match empty filters")
	}
}
