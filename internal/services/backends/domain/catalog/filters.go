package catalog

import "github.com/shopspring/decimal"

// Filters narrows a catalog search. Zero-valued fields are ignored.
type Filters struct {
	Query        string
	Category     Category
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	WifiStandard int
	InStockOnly  bool
	Lifecycle    Lifecycle
}

// Matches reports whether the product satisfies every set filter.
func (f Filters) Matches(p Product) bool {
	if !p.MatchesQuery(f.Query) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if !f.MinPrice.IsZero() && p.Price.LessThan(f.MinPrice) {
		return false
	}
	if !f.MaxPrice.IsZero() && p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	if f.WifiStandard != 0 && p.WifiStandard != f.WifiStandard {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	if f.Lifecycle != LifecycleUnspecified && p.Lifecycle != f.Lifecycle {
		return false
	}
	return true
}
