// Package main starts the MCP server exposing ERP lookups as agent tools,
// on stdio or streamable HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/homestream/internal/platform/config"
	platformotel "github.com/louisbranch/homestream/internal/platform/otel"
	"github.com/louisbranch/homestream/internal/services/mcp/service"
)

func main() {
	var cfg service.Config
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse config: %v", err)
	}
	transport := flag.String("transport", string(cfg.Transport), "transport kind (stdio or http)")
	flag.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "backend suite base URL")
	flag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address for the http transport")
	flag.Parse()
	cfg.Transport = service.TransportKind(*transport)

	// Stdio carries the protocol, so logs must stay off stdout.
	log.SetOutput(os.Stderr)
	log.SetPrefix("[MCP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := platformotel.Setup(ctx, "mcp")
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	if err := service.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
