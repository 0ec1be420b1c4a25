package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/louisbranch/homestream/internal/platform/timeouts"
	"github.com/louisbranch/homestream/internal/services/backends/journal"
	"github.com/louisbranch/homestream/internal/services/backends/storage/memory"
)

// Server hosts the backend suite HTTP process.
type Server struct {
	app        *App
	httpServer *http.Server
	journal    *journal.Journal
}

// NewServer builds the store, journal, and App, seeds the demo baseline,
// and wires the routes.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	jrnl, err := journal.Open(config.JournalDSN)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	application := New(memory.New(), jrnl, config.ReturnWindowDays)
	if err := application.Seed(ctx); err != nil {
		_ = jrnl.Close()
		return nil, fmt.Errorf("seed demo data: %w", err)
	}

	s := &Server{app: application, journal: jrnl}
	s.httpServer = &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           withRequestSpan(s.routes()),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return s, nil
}

// Run builds a server from config and serves until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(ctx, config)
	if err != nil {
		return fmt.Errorf("init backends server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve backends: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	log.Printf("backends listening on %s", s.httpServer.Addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("close journal: %v", err)
		}
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Commerce (storefront and order management).
	mux.HandleFunc("GET /commerce/customers/{customerID}", s.handleGetCustomer)
	mux.HandleFunc("PATCH /commerce/customers/{customerID}/contact", s.handleUpdateCustomerContact)
	mux.HandleFunc("GET /commerce/customers/{customerID}/orders", s.handleListRecentOrders)
	mux.HandleFunc("GET /commerce/catalog/products", s.handleSearchProducts)
	mux.HandleFunc("POST /commerce/rmas", s.handleCreateRMA)
	mux.HandleFunc("GET /commerce/rmas", s.handleListRMAs)
	mux.HandleFunc("GET /commerce/rmas/{rmaID}", s.handleGetRMA)
	mux.HandleFunc("POST /commerce/rmas/{rmaID}/close", s.handleCloseRMA)
	mux.HandleFunc("POST /commerce/carts", s.handleCreateCart)
	mux.HandleFunc("GET /commerce/carts/{cartID}", s.handleGetCart)
	mux.HandleFunc("POST /commerce/carts/{cartID}/items", s.handleAddCartItem)
	mux.HandleFunc("DELETE /commerce/carts/{cartID}/items/{sku}", s.handleRemoveCartItem)
	mux.HandleFunc("POST /commerce/carts/{cartID}/discounts/store-credit", s.handleApplyStoreCredit)
	mux.HandleFunc("POST /commerce/orders", s.handlePlaceOrder)
	mux.HandleFunc("GET /commerce/orders/{orderID}", s.handleGetOrder)

	// ERP (catalog master data).
	mux.HandleFunc("GET /erp/skus/{sku}", s.handleGetSKU)
	mux.HandleFunc("GET /erp/skus/{sku}/return-eligibility", s.handleCheckReturnEligibility)
	mux.HandleFunc("GET /erp/availability", s.handleCheckAvailability)

	// Returns policy.
	mux.HandleFunc("POST /policy/returns/evaluate", s.handleEvaluateReturn)

	// WMS (warehouse).
	mux.HandleFunc("GET /wms/fulfillment/eligibility", s.handleCheckFulfillment)
	mux.HandleFunc("POST /wms/returns/expected", s.handleRegisterExpectedReturn)
	mux.HandleFunc("GET /wms/returns/expected", s.handleListExpectedReturns)
	mux.HandleFunc("POST /wms/returns/receive", s.handleReceiveReturn)
	mux.HandleFunc("POST /wms/shipments/release", s.handleReleaseShipment)
	mux.HandleFunc("POST /wms/shipments/{shipmentID}/delivered", s.handleMarkShipmentDelivered)

	// Returns provider (labels).
	mux.HandleFunc("POST /returns/labels", s.handleGenerateLabel)

	// Payments.
	mux.HandleFunc("POST /payments/credits/issue", s.handleIssueCredit)
	mux.HandleFunc("POST /payments/credits", s.handleIssueManualCredit)
	mux.HandleFunc("GET /payments/credits", s.handleListCredits)
	mux.HandleFunc("GET /payments/credits/{creditID}", s.handleGetCredit)
	mux.HandleFunc("POST /payments/charges", s.handleChargeOrder)

	// Notifications.
	mux.HandleFunc("POST /notify/email", s.handleSendEmail)
	mux.HandleFunc("GET /notify/email", s.handleListEmails)

	// Admin.
	mux.HandleFunc("POST /admin/reset", s.handleAdminReset)
	mux.HandleFunc("GET /admin/journal", s.handleJournal)

	return mux
}
