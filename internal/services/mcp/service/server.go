// Package service assembles the MCP server that exposes ERP lookups as
// agent tools. The same tool handlers serve both stdio and HTTP transports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/homestream/internal/platform/timeouts"
	"github.com/louisbranch/homestream/internal/services/mcp/domain"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "homestream-erp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind selects how the MCP server talks to its client.
type TransportKind string

const (
	// TransportStdio serves a single client over stdin/stdout.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves streamable HTTP sessions.
	TransportHTTP TransportKind = "http"
)

// Config carries MCP service startup options.
type Config struct {
	BackendURL string        `env:"HOMESTREAM_BACKEND_URL" envDefault:"http://localhost:8100"`
	Transport  TransportKind `env:"HOMESTREAM_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr   string        `env:"HOMESTREAM_MCP_HTTP_ADDR" envDefault:"localhost:8101"`
}

// NewServer builds an MCP server with the ERP tool set registered against
// the backend suite client.
func NewServer(client *domain.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sap_check_return_eligibility",
		Description: "Check if a SKU is eligible for return based on order ID and days since delivery",
	}, domain.ReturnEligibilityHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sap_get_sku_info",
		Description: "Get SKU lifecycle and clearance information from SAP",
	}, domain.SKUInfoHandler(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sap_check_availability",
		Description: "Check product availability and stock level in SAP",
	}, domain.AvailabilityHandler(client))

	return server
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation. Startup chooses stdio for local tools and HTTP for remote
// integrations.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server := NewServer(domain.NewClient(cfg.BackendURL))

	switch cfg.Transport {
	case TransportStdio:
		return server.Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runHTTP(ctx, cfg, server)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runHTTP serves streamable HTTP MCP sessions until ctx is cancelled.
func runHTTP(ctx context.Context, cfg Config, server *mcp.Server) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("mcp http transport listening on %s", cfg.HTTPAddr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve mcp http: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown mcp http: %w", err)
		}
		return nil
	}
}
