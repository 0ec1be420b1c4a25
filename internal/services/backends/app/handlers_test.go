package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := &Server{app: newTestApp(t)}
	ts := httptest.NewServer(withRequestSpan(s.routes()))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", path, resp.StatusCode, wantStatus)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func postJSON(t *testing.T, ts *httptest.Server, path, body string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s status = %d, want %d", path, resp.StatusCode, wantStatus)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	out := getJSON(t, ts, "/health", http.StatusOK)
	if out["status"] != "healthy" {
		t.Fatalf("status = %v, want healthy", out["status"])
	}
}

func TestGetSKUEndpoint(t *testing.T) {
	ts := newTestServer(t)

	out := getJSON(t, ts, "/erp/skus/RTR-AC1900", http.StatusOK)
	if out["lifecycle_status"] != "DISCONTINUED" {
		t.Fatalf("lifecycle = %v, want DISCONTINUED", out["lifecycle_status"])
	}
	if out["price"] != "149.99" {
		t.Fatalf("price = %v, want 149.99", out["price"])
	}

	errOut := getJSON(t, ts, "/erp/skus/RTR-MISSING", http.StatusNotFound)
	errBody, ok := errOut["error"].(map[string]any)
	if !ok {
		t.Fatalf("error body missing: %v", errOut)
	}
	if errBody["code"] != "NOT_FOUND" {
		t.Fatalf("error code = %v, want NOT_FOUND", errBody["code"])
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	ts := newTestServer(t)

	out := getJSON(t, ts, "/erp/availability?sku=RTR-AX5400", http.StatusOK)
	if out["available"] != true {
		t.Fatalf("available = %v, want true", out["available"])
	}
	if out["quantity"].(float64) != 45 {
		t.Fatalf("quantity = %v, want 45", out["quantity"])
	}
	if out["lead_time_days"].(float64) != 2 {
		t.Fatalf("lead time = %v, want 2", out["lead_time_days"])
	}

	getJSON(t, ts, "/erp/availability", http.StatusBadRequest)
}

func TestEvaluateReturnEndpoint(t *testing.T) {
	ts := newTestServer(t)

	out := postJSON(t, ts, "/policy/returns/evaluate",
		`{"order_id":"ORD-2025-001234","sku":"RTR-AC1900","days_since_delivery":12}`,
		http.StatusOK)
	if out["decision"] != "EXCEPTION_REQUIRED" {
		t.Fatalf("decision = %v, want EXCEPTION_REQUIRED", out["decision"])
	}
	if out["reason"] != "PRODUCT_DISCONTINUED" {
		t.Fatalf("reason = %v, want PRODUCT_DISCONTINUED", out["reason"])
	}

	postJSON(t, ts, "/policy/returns/evaluate",
		`{"order_id":"ORD-MISSING","sku":"RTR-AC1900","days_since_delivery":12}`,
		http.StatusNotFound)
}

func TestReturnEligibilityEndpoint(t *testing.T) {
	ts := newTestServer(t)

	out := getJSON(t, ts, "/erp/skus/RTR-AC1900/return-eligibility?orderId=ORD-2025-001234&daysSinceDelivery=12",
		http.StatusOK)
	if out["eligible"] != true {
		t.Fatalf("eligible = %v, want true", out["eligible"])
	}
	if out["days_remaining"] != float64(18) {
		t.Fatalf("days remaining = %v, want 18", out["days_remaining"])
	}

	getJSON(t, ts, "/erp/skus/RTR-AC1900/return-eligibility?daysSinceDelivery=12", http.StatusBadRequest)
	getJSON(t, ts, "/erp/skus/RTR-AC1900/return-eligibility?orderId=ORD-MISSING&daysSinceDelivery=12",
		http.StatusNotFound)
}

func TestReturnExchangeFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	rma := postJSON(t, ts, "/commerce/rmas",
		`{"customer_id":"CUST001","order_id":"ORD-2025-001234","sku":"RTR-AC1900","reason_code":"performance issues"}`,
		http.StatusCreated)
	if rma["status"] != "EXCEPTION_APPROVED" {
		t.Fatalf("rma status = %v, want EXCEPTION_APPROVED", rma["status"])
	}
	rmaID := rma["rma_id"].(string)

	label := postJSON(t, ts, "/returns/labels",
		`{"rma_id":"`+rmaID+`"}`, http.StatusCreated)
	if label["carrier"] != "USPS" {
		t.Fatalf("carrier = %v, want USPS", label["carrier"])
	}

	credit := postJSON(t, ts, "/payments/credits/issue",
		`{"rma_id":"`+rmaID+`"}`, http.StatusCreated)
	if credit["amount"] != "149.99" {
		t.Fatalf("credit amount = %v, want 149.99", credit["amount"])
	}
	creditID := credit["credit_id"].(string)

	cart := postJSON(t, ts, "/commerce/carts",
		`{"customer_id":"CUST001"}`, http.StatusCreated)
	cartID := cart["cart_id"].(string)

	postJSON(t, ts, "/commerce/carts/"+cartID+"/items",
		`{"sku":"RTR-AX5400","quantity":1}`, http.StatusOK)
	postJSON(t, ts, "/commerce/carts/"+cartID+"/discounts/store-credit",
		`{"credit_id":"`+creditID+`"}`, http.StatusOK)

	state := getJSON(t, ts, "/commerce/carts/"+cartID, http.StatusOK)
	totals := state["totals"].(map[string]any)
	if totals["payable"] != "50" && totals["payable"] != "50.00" {
		t.Fatalf("payable = %v, want 50.00", totals["payable"])
	}

	placed := postJSON(t, ts, "/commerce/orders",
		`{"cart_id":"`+cartID+`"}`, http.StatusCreated)
	if placed["status"] != "PLACED" {
		t.Fatalf("order status = %v, want PLACED", placed["status"])
	}

	// Checked-out cart refuses further mutation.
	out := postJSON(t, ts, "/commerce/carts/"+cartID+"/items",
		`{"sku":"RTR-AX3000","quantity":1}`, http.StatusConflict)
	errBody := out["error"].(map[string]any)
	if errBody["code"] != "INVALID_STATE" {
		t.Fatalf("error code = %v, want INVALID_STATE", errBody["code"])
	}
}

func TestAdminResetEndpoint(t *testing.T) {
	ts := newTestServer(t)

	cart := postJSON(t, ts, "/commerce/carts", `{"customer_id":"CUST001"}`, http.StatusCreated)
	cartID := cart["cart_id"].(string)

	postJSON(t, ts, "/admin/reset", `{}`, http.StatusOK)
	getJSON(t, ts, "/commerce/carts/"+cartID, http.StatusNotFound)
}

func TestHomepage(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q, want text/html", ct)
	}
}
