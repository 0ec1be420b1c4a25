// Package app assembles the simulated enterprise backends behind one
// HTTP surface: commerce (carts, orders, RMAs), ERP (catalog), WMS
// (fulfillment, expected returns, shipments), returns policy, returns
// provider (labels), payments (credits, charges), notifications, and the
// admin surface.
//
// Business rules live here; the store only holds records. Composite
// operations run inside a single store transaction so invariants like
// one-credit-per-RMA hold under concurrency.
package app

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/homestream/internal/platform/id"
	"github.com/louisbranch/homestream/internal/services/backends/journal"
	"github.com/louisbranch/homestream/internal/services/backends/seed"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// Config is the backend suite configuration, read from the environment.
type Config struct {
	HTTPAddr         string `env:"HOMESTREAM_HTTP_ADDR" envDefault:":8100"`
	ReturnWindowDays int    `env:"HOMESTREAM_RETURN_WINDOW_DAYS" envDefault:"30"`
	JournalDSN       string `env:"HOMESTREAM_JOURNAL_DSN"`
}

// App carries the store, the operation journal, and the injected clock and
// id generator every operation uses.
type App struct {
	store      storage.Store
	journal    *journal.Journal
	windowDays int

	now   func() time.Time
	newID func(prefix string) (string, error)
}

// New wires an App over the given store. The journal may be nil; recording
// then becomes a no-op.
func New(store storage.Store, jrnl *journal.Journal, windowDays int) *App {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &App{
		store:      store,
		journal:    jrnl,
		windowDays: windowDays,
		now:        time.Now,
		newID:      id.NewPrefixedID,
	}
}

// Seed loads the demo baseline.
func (a *App) Seed(ctx context.Context) error {
	return seed.Apply(ctx, a.store, a.now)
}

// record appends to the operation journal. Journal failures are logged and
// swallowed; the journal is observability, not state.
func (a *App) record(ctx context.Context, system, operation string, params, response any) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Record(ctx, system, operation, params, response); err != nil {
		log.Printf("journal %s/%s: %v", system, operation, err)
	}
}
