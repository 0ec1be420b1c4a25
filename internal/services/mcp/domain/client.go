// Package domain implements the MCP tool surface over the backend suite.
// Handlers translate tool calls into HTTP requests against the ERP service
// and shape the responses for agent consumption.
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/homestream/internal/platform/timeouts"
)

// Client calls the backend suite's ERP endpoints.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient returns a client for the backend suite at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeouts.BackendRequest},
	}
}

// SKUInfo is the ERP lifecycle record for one SKU.
type SKUInfo struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Lifecycle   string `json:"lifecycle_status"`
	Price       string `json:"price"`
	Stock       int    `json:"stock_quantity"`
	Description string `json:"description"`
}

// AvailabilityInfo is the ERP stock answer for one SKU.
type AvailabilityInfo struct {
	SKU          string `json:"sku"`
	Available    bool   `json:"available"`
	Quantity     int    `json:"quantity"`
	LeadTimeDays int    `json:"lead_time_days"`
	Warehouse    string `json:"warehouse_location"`
}

// EligibilityInfo is the ERP return-window answer for one SKU on one order.
type EligibilityInfo struct {
	Eligible      bool   `json:"eligible"`
	Reason        string `json:"reason"`
	DaysRemaining int    `json:"days_remaining"`
	RestockingFee string `json:"restocking_fee"`
}

// SKUInfo fetches lifecycle information for a SKU.
func (c *Client) SKUInfo(ctx context.Context, sku string) (SKUInfo, error) {
	var out SKUInfo
	err := c.get(ctx, "/erp/skus/"+url.PathEscape(sku), nil, &out)
	return out, err
}

// Availability fetches current stock for a SKU.
func (c *Client) Availability(ctx context.Context, sku string) (AvailabilityInfo, error) {
	var out AvailabilityInfo
	err := c.get(ctx, "/erp/availability", url.Values{"sku": {sku}}, &out)
	return out, err
}

// ReturnEligibility checks whether a SKU on an order is inside the return
// window, given days elapsed since delivery.
func (c *Client) ReturnEligibility(ctx context.Context, sku, orderID string, daysSinceDelivery int) (EligibilityInfo, error) {
	query := url.Values{
		"orderId":           {orderID},
		"daysSinceDelivery": {strconv.Itoa(daysSinceDelivery)},
	}
	var out EligibilityInfo
	err := c.get(ctx, "/erp/skus/"+url.PathEscape(sku)+"/return-eligibility", query, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// backendError surfaces the backend's structured error body when present.
func backendError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		return fmt.Errorf("backend returned %s: %s", payload.Error.Code, payload.Error.Message)
	}
	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}
