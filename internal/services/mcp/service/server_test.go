package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/homestream/internal/services/mcp/domain"
)

// connectTestSession serves the MCP server over in-memory transports and
// returns a connected client session.
func connectTestSession(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})
	return session
}

func TestNewServerRegistersTools(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()

	session := connectTestSession(t, NewServer(domain.NewClient(backend.URL)))

	listed, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"sap_check_availability", "sap_check_return_eligibility", "sap_get_sku_info"}
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %v", len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("expected tool %q, got %q", name, names[i])
		}
	}
}

func TestCallSKUInfoTool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /erp/skus/RTR-AX5400", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sku":"RTR-AX5400","name":"AX5400 WiFi 6 Router","price":"199.99","lifecycle_status":"ACTIVE","stock_quantity":45}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	session := connectTestSession(t, NewServer(domain.NewClient(backend.URL)))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "sap_get_sku_info",
		Arguments: map[string]any{"sku": "RTR-AX5400"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %v", result.Content)
	}
	payload, ok := result.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("expected structured content map, got %T", result.StructuredContent)
	}
	if payload["lifecycle_status"] != "ACTIVE" {
		t.Errorf("expected ACTIVE lifecycle, got %v", payload["lifecycle_status"])
	}
	if payload["current_price"] != "199.99" {
		t.Errorf("expected price 199.99, got %v", payload["current_price"])
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{
		BackendURL: "http://localhost:0",
		Transport:  "websocket",
	})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestRunHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- Run(ctx, Config{
			BackendURL: "http://localhost:0",
			Transport:  TransportHTTP,
			HTTPAddr:   "localhost:0",
		})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}
