package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReturnEligibilityHandler checks whether a SKU on an order is inside the
// standard return window.
func ReturnEligibilityHandler(client *Client) mcp.ToolHandlerFor[ReturnEligibilityInput, ReturnEligibilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReturnEligibilityInput) (*mcp.CallToolResult, ReturnEligibilityResult, error) {
		sku := strings.TrimSpace(input.SKU)
		orderID := strings.TrimSpace(input.OrderID)
		if sku == "" {
			return nil, ReturnEligibilityResult{}, fmt.Errorf("sku is required")
		}
		if orderID == "" {
			return nil, ReturnEligibilityResult{}, fmt.Errorf("order_id is required")
		}
		info, err := client.ReturnEligibility(ctx, sku, orderID, input.DaysSinceDelivery)
		if err != nil {
			return nil, ReturnEligibilityResult{}, fmt.Errorf("return eligibility check failed: %w", err)
		}
		return nil, ReturnEligibilityResult{
			SKU:           sku,
			OrderID:       orderID,
			Eligible:      info.Eligible,
			Reason:        info.Reason,
			DaysRemaining: info.DaysRemaining,
			RestockingFee: info.RestockingFee,
		}, nil
	}
}

// SKUInfoHandler looks up lifecycle and pricing information for a SKU.
func SKUInfoHandler(client *Client) mcp.ToolHandlerFor[SKUInfoInput, SKUInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SKUInfoInput) (*mcp.CallToolResult, SKUInfoResult, error) {
		sku := strings.TrimSpace(input.SKU)
		if sku == "" {
			return nil, SKUInfoResult{}, fmt.Errorf("sku is required")
		}
		info, err := client.SKUInfo(ctx, sku)
		if err != nil {
			return nil, SKUInfoResult{}, fmt.Errorf("sku lookup failed: %w", err)
		}
		return nil, SKUInfoResult{
			SKU:             info.SKU,
			Name:            info.Name,
			LifecycleStatus: info.Lifecycle,
			IsClearance:     info.Lifecycle == "CLEARANCE",
			IsDiscontinued:  info.Lifecycle == "DISCONTINUED" || info.Lifecycle == "EOL",
			CurrentPrice:    info.Price,
		}, nil
	}
}

// AvailabilityHandler reports current stock for a SKU.
func AvailabilityHandler(client *Client) mcp.ToolHandlerFor[AvailabilityInput, AvailabilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AvailabilityInput) (*mcp.CallToolResult, AvailabilityResult, error) {
		sku := strings.TrimSpace(input.SKU)
		if sku == "" {
			return nil, AvailabilityResult{}, fmt.Errorf("sku is required")
		}
		info, err := client.Availability(ctx, sku)
		if err != nil {
			return nil, AvailabilityResult{}, fmt.Errorf("availability check failed: %w", err)
		}
		return nil, AvailabilityResult{
			SKU:               info.SKU,
			Available:         info.Available,
			Quantity:          info.Quantity,
			LeadTimeDays:      info.LeadTimeDays,
			WarehouseLocation: info.Warehouse,
		}, nil
	}
}
