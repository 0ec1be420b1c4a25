// Package main provides a CLI for resetting a running backend suite to its
// demo baseline by calling the admin surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/homestream/internal/platform/config"
	"github.com/louisbranch/homestream/internal/platform/timeouts"
)

func main() {
	addr := flag.String("addr", "http://localhost:8100", "backend suite base URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeouts.BackendRequest)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *addr+"/admin/reset", nil)
	if err != nil {
		config.Exitf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		config.Exitf("reset demo data: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.Exitf("reset demo data: status %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		config.Exitf("decode response: %v", err)
	}
	fmt.Println(body.Message)
}
