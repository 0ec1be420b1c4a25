package domain

// ReturnEligibilityInput represents the MCP tool input for return window checks.
type ReturnEligibilityInput struct {
	SKU               string `json:"sku" jsonschema:"product SKU to check return eligibility for"`
	OrderID           string `json:"order_id" jsonschema:"order identifier the SKU was purchased on"`
	DaysSinceDelivery int    `json:"days_since_delivery" jsonschema:"number of days elapsed since the order was delivered"`
}

// ReturnEligibilityResult represents the MCP tool output for return window checks.
type ReturnEligibilityResult struct {
	SKU           string `json:"sku" jsonschema:"product SKU checked"`
	OrderID       string `json:"order_id" jsonschema:"order identifier checked"`
	Eligible      bool   `json:"eligible" jsonschema:"whether the SKU is inside the return window"`
	Reason        string `json:"reason" jsonschema:"human-readable explanation of the decision"`
	DaysRemaining int    `json:"days_remaining" jsonschema:"days left in the return window (0 when expired)"`
	RestockingFee string `json:"restocking_fee" jsonschema:"restocking fee charged on the return"`
}

// SKUInfoInput represents the MCP tool input for SKU lifecycle lookups.
type SKUInfoInput struct {
	SKU string `json:"sku" jsonschema:"product SKU to look up"`
}

// SKUInfoResult represents the MCP tool output for SKU lifecycle lookups.
type SKUInfoResult struct {
	SKU             string `json:"sku" jsonschema:"product SKU"`
	Name            string `json:"name" jsonschema:"product name"`
	LifecycleStatus string `json:"lifecycle_status" jsonschema:"lifecycle status (ACTIVE, CLEARANCE, DISCONTINUED, EOL)"`
	IsClearance     bool   `json:"is_clearance" jsonschema:"whether the SKU is in clearance"`
	IsDiscontinued  bool   `json:"is_discontinued" jsonschema:"whether the SKU is discontinued"`
	CurrentPrice    string `json:"current_price" jsonschema:"current list price"`
}

// AvailabilityInput represents the MCP tool input for stock checks.
type AvailabilityInput struct {
	SKU string `json:"sku" jsonschema:"product SKU to check stock for"`
}

// AvailabilityResult represents the MCP tool output for stock checks.
type AvailabilityResult struct {
	SKU               string `json:"sku" jsonschema:"product SKU"`
	Available         bool   `json:"available" jsonschema:"whether the SKU is in stock"`
	Quantity          int    `json:"quantity" jsonschema:"units currently in stock"`
	LeadTimeDays      int    `json:"lead_time_days" jsonschema:"restock lead time in days"`
	WarehouseLocation string `json:"warehouse_location" jsonschema:"fulfilling warehouse, or OUT_OF_STOCK"`
}
