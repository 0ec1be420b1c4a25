// Package main starts the backend suite: commerce, ERP, WMS, policy,
// returns, payments, and notifications behind one HTTP server.
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
	"github.com/louisbranch/homestream/internal/services/backends/app"
)

func main() {
	var cfg app.Config
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse config: %v", err)
	}
	flag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	flag.IntVar(&cfg.ReturnWindowDays, "return-window-days", cfg.ReturnWindowDays, "standard return window in days")
	flag.Parse()

	log.SetPrefix("[BACKENDS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := platformotel.Setup(ctx, "backends")
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
