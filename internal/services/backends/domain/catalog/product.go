// Package catalog defines product records and their lifecycle states.
//
// Lifecycle state is the sole driver of return-exception handling; prices
// are snapshotted into orders and RMAs at transaction time, so later price
// changes never rewrite history.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Lifecycle describes where a product sits in its sales lifecycle.
type Lifecycle string

const (
	LifecycleUnspecified  Lifecycle = ""
	LifecycleActive       Lifecycle = "ACTIVE"
	LifecycleClearance    Lifecycle = "CLEARANCE"
	LifecycleDiscontinued Lifecycle = "DISCONTINUED"
	LifecycleEOL          Lifecycle = "EOL"
)

// ParseLifecycle canonicalizes lifecycle labels from request payloads.
func ParseLifecycle(value string) (Lifecycle, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ACTIVE":
		return LifecycleActive, true
	case "CLEARANCE":
		return LifecycleClearance, true
	case "DISCONTINUED":
		return LifecycleDiscontinued, true
	case "EOL", "END_OF_LIFE":
		return LifecycleEOL, true
	default:
		return LifecycleUnspecified, false
	}
}

// ExceptionRequired reports whether the lifecycle state forces the
// return-policy exception path regardless of the eligibility window.
func (l Lifecycle) ExceptionRequired() bool {
	return l == LifecycleDiscontinued || l == LifecycleEOL
}

// Category groups products for search filters.
type Category string

const (
	CategoryRouters     Category = "routers"
	CategoryModems      Category = "modems"
	CategorySwitches    Category = "switches"
	CategoryNetworking  Category = "networking"
	CategoryAccessories Category = "accessories"
)

// Product represents a sellable SKU.
type Product struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Price        decimal.Decimal `json:"price"`
	WifiStandard int             `json:"wifi_standard,omitempty"`
	Tags         []string        `json:"tags"`
	Description  string          `json:"description"`
	Lifecycle    Lifecycle       `json:"lifecycle_status"`
	Stock        int             `json:"stock_quantity"`
	LeadTimeDays int             `json:"lead_time_days"`
}

// InStock reports whether any units remain.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// HasTag reports whether the product carries the given tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether the free-text query matches the product
// name, description, or any tag.
func (p Product) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
