// Package seed loads the fixed demo dataset the simulation starts from.
//
// The fixture centers on one returnable purchase: CUST001 bought a now
// discontinued RTR-AC1900 router delivered twelve days before process
// start, which keeps the order inside the default return window while the
// product itself forces the exception path.
package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/domain/customer"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Apply writes the demo baseline into the store. It is safe to call after
// a reset; records are keyed and replace any leftovers.
func Apply(ctx context.Context, store storage.Store, now func() time.Time) error {
	start := now().UTC()
	return store.Update(ctx, func(tx storage.Tx) error {
		for _, c := range Customers(start) {
			tx.PutCustomer(c)
		}
		for _, p := range Products() {
			tx.PutProduct(p)
		}
		for _, o := range Orders(start) {
			tx.PutOrder(o)
		}
		return nil
	})
}

// Customers returns the demo customers.
func Customers(now time.Time) []customer.Customer {
	return []customer.Customer{
		{
			ID:    "CUST001",
			Name:  "John Smith",
			Email: "john.smith@example.com",
			Phone: "+1-555-0123",
			Address: customer.Address{
				Street:     "123 Main Street",
				City:       "San Francisco",
				State:      "CA",
				PostalCode: "94102",
				Country:    "USA",
			},
			CreatedAt: now,
		},
		{
			ID:    "0039Q00001VsHMXQA3",
			Name:  "Sarah Chen",
			Email: "sarah.chen@example.com",
			Phone: "+1-555-0456",
			Address: customer.Address{
				Street:     "456 Tech Avenue",
				City:       "Seattle",
				State:      "WA",
				PostalCode: "98101",
				Country:    "USA",
			},
			CreatedAt: now,
		},
		{
			ID:    "0039Q00001VcSaVQAV",
			Name:  "Mike Torres",
			Email: "mike.torres@example.com",
			Phone: "+1-555-0789",
			Address: customer.Address{
				Street:     "789 Innovation Drive",
				City:       "Portland",
				State:      "OR",
				PostalCode: "97201",
				Country:    "USA",
			},
			CreatedAt: now,
		},
	}
}

// Products returns the demo catalog.
func Products() []catalog.Product {
	return []catalog.Product{
		{
			SKU:          "RTR-AC1900",
			Name:         "AC1900 Dual-Band WiFi Router",
			Category:     catalog.CategoryRouters,
			Price:        price("149.99"),
			WifiStandard: 5,
			Tags:         []string{"ac1900", "dual-band", "basic"},
			Description:  "Basic AC1900 router suitable for light browsing",
			Lifecycle:    catalog.LifecycleDiscontinued,
			Stock:        0,
		},
		{
			SKU:          "RTR-AX5400",
			Name:         "AX5400 WiFi 6 Gaming Router",
			Category:     catalog.CategoryRouters,
			Price:        price("199.99"),
			WifiStandard: 6,
			Tags:         []string{"gaming", "low-latency", "wifi6", "mesh-ready"},
			Description:  "High-performance WiFi 6 router optimized for gaming and video calls with advanced QoS",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        45,
			LeadTimeDays: 2,
		},
		{
			SKU:          "RTR-GAMING-AX5700",
			Name:         "Gaming Pro AX5700 WiFi 6 Router",
			Category:     catalog.CategoryNetworking,
			Price:        price("199.99"),
			WifiStandard: 6,
			Tags:         []string{"gaming", "wifi", "router", "low-latency", "wifi6", "qos"},
			Description:  "Professional gaming router with WiFi 6, advanced QoS, and ultra-low latency for competitive gaming",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        32,
			LeadTimeDays: 3,
		},
		{
			SKU:          "RTR-AXE7800",
			Name:         "AXE7800 Tri-Band WiFi 6E Gaming Router",
			Category:     catalog.CategoryRouters,
			Price:        price("349.99"),
			WifiStandard: 7,
			Tags:         []string{"gaming", "low-latency", "wifi6e", "tri-band", "professional"},
			Description:  "Premium WiFi 6E tri-band router with dedicated 6GHz band for ultra-low latency",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        23,
			LeadTimeDays: 5,
		},
		{
			SKU:          "RTR-AX3000",
			Name:         "AX3000 WiFi 6 Router",
			Category:     catalog.CategoryRouters,
			Price:        price("149.99"),
			WifiStandard: 6,
			Tags:         []string{"wifi6", "value", "home-office"},
			Description:  "Affordable WiFi 6 router great for home office and streaming",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        78,
			LeadTimeDays: 2,
		},
		{
			SKU:          "RTR-HS-DELUXE",
			Name:         "HomeStream Deluxe Router",
			Category:     catalog.CategoryRouters,
			Price:        price("199.99"),
			Tags:         []string{"deluxe", "family"},
			Description:  "Flagship whole-home router bundle",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        18,
			LeadTimeDays: 4,
		},
		{
			SKU:          "RTR-HS-BASIC",
			Name:         "HomeStream Basic Router",
			Category:     catalog.CategoryRouters,
			Price:        price("149.99"),
			Tags:         []string{"basic", "starter"},
			Description:  "Entry-level router for small apartments",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        52,
			LeadTimeDays: 2,
		},
		{
			SKU:          "ACC-CAT6-10FT",
			Name:         "CAT6 Ethernet Cable 10ft",
			Category:     catalog.CategoryAccessories,
			Price:        price("12.99"),
			Tags:         []string{"cable", "cat6"},
			Description:  "Snagless CAT6 patch cable",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        200,
			LeadTimeDays: 1,
		},
		{
			SKU:          "ACC-ETHERNET",
			Name:         "CAT6 Ethernet Cable 10ft",
			Category:     catalog.CategoryAccessories,
			Price:        price("12.99"),
			Tags:         []string{"cable", "cat6"},
			Description:  "Snagless CAT6 patch cable",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        150,
			LeadTimeDays: 1,
		},
		{
			SKU:          "ACC-PWR-CABLE",
			Name:         "Replacement Power Cable",
			Category:     catalog.CategoryAccessories,
			Price:        price("15.99"),
			Tags:         []string{"power", "replacement"},
			Description:  "Replacement power cable for HomeStream routers",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        90,
			LeadTimeDays: 2,
		},
		{
			SKU:          "ACC-WIFI-ADAPTER",
			Name:         "USB WiFi Adapter",
			Category:     catalog.CategoryAccessories,
			Price:        price("29.99"),
			Tags:         []string{"usb", "adapter"},
			Description:  "Dual-band USB WiFi adapter for desktops",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        64,
			LeadTimeDays: 3,
		},
		{
			SKU:          "ACC-SURGE-PROTECTOR",
			Name:         "Smart Surge Protector",
			Category:     catalog.CategoryAccessories,
			Price:        price("34.99"),
			Tags:         []string{"power", "smart-home"},
			Description:  "Six-outlet surge protector with per-outlet control",
			Lifecycle:    catalog.LifecycleActive,
			Stock:        41,
			LeadTimeDays: 3,
		},
	}
}

func deliveredOrder(id, customerID string, placed, delivered time.Time, items []order.LineItem) order.Order {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}
	at := delivered
	return order.Order{
		ID:          id,
		CustomerID:  customerID,
		Status:      order.StatusDelivered,
		Items:       items,
		Totals:      order.ComputeTotals(subtotal, decimal.Zero),
		PlacedAt:    placed,
		DeliveredAt: &at,
	}
}

// Orders returns the demo order history, dated relative to now so the
// headline RTR-AC1900 purchase always sits twelve days after delivery.
func Orders(now time.Time) []order.Order {
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	return []order.Order{
		deliveredOrder("ORD-2025-001234", "CUST001", days(15), days(12), []order.LineItem{
			{SKU: "RTR-AC1900", Name: "AC1900 Dual-Band WiFi Router", Quantity: 1, UnitPrice: price("149.99")},
		}),
		deliveredOrder("ORD-2025-001235", "CUST001", days(90), days(87), []order.LineItem{
			{SKU: "ACC-CAT6-10FT", Name: "CAT6 Ethernet Cable 10ft", Quantity: 2, UnitPrice: price("12.99")},
		}),
		deliveredOrder("ORD-2025-007891", "0039Q00001VsHMXQA3", days(47), days(45), []order.LineItem{
			{SKU: "RTR-HS-DELUXE", Name: "HomeStream Deluxe Router", Quantity: 1, UnitPrice: price("199.99")},
			{SKU: "ACC-PWR-CABLE", Name: "Replacement Power Cable", Quantity: 2, UnitPrice: price("15.99")},
		}),
		deliveredOrder("ORD-2025-007892", "0039Q00001VsHMXQA3", days(3), days(1), []order.LineItem{
			{SKU: "RTR-HS-BASIC", Name: "HomeStream Basic Router", Quantity: 1, UnitPrice: price("149.99")},
			{SKU: "ACC-ETHERNET", Name: "CAT6 Ethernet Cable 10ft", Quantity: 1, UnitPrice: price("12.99")},
		}),
		deliveredOrder("ORD-2025-007893", "0039Q00001VsHMXQA3", days(13), days(12), []order.LineItem{
			{SKU: "ACC-WIFI-ADAPTER", Name: "USB WiFi Adapter", Quantity: 1, UnitPrice: price("29.99")},
			{SKU: "ACC-SURGE-PROTECTOR", Name: "Smart Surge Protector", Quantity: 1, UnitPrice: price("34.99")},
		}),
		deliveredOrder("ORD-2025-008891", "0039Q00001VcSaVQAV", days(47), days(45), []order.LineItem{
			{SKU: "RTR-HS-DELUXE", Name: "HomeStream Deluxe Router", Quantity: 1, UnitPrice: price("199.99")},
			{SKU: "ACC-PWR-CABLE", Name: "Replacement Power Cable", Quantity: 2, UnitPrice: price("15.99")},
		}),
		deliveredOrder("ORD-2025-008892", "0039Q00001VcSaVQAV", days(3), days(1), []order.LineItem{
			{SKU: "RTR-HS-BASIC", Name: "HomeStream Basic Router", Quantity: 1, UnitPrice: price("149.99")},
			{SKU: "ACC-ETHERNET", Name: "CAT6 Ethernet Cable 10ft", Quantity: 1, UnitPrice: price("12.99")},
		}),
		deliveredOrder("ORD-2025-008893", "0039Q00001VcSaVQAV", days(13), days(12), []order.LineItem{
			{SKU: "ACC-WIFI-ADAPTER", Name: "USB WiFi Adapter", Quantity: 1, UnitPrice: price("29.99")},
			{SKU: "ACC-SURGE-PROTECTOR", Name: "Smart Surge Protector", Quantity: 1, UnitPrice: price("34.99")},
		}),
	}
}
