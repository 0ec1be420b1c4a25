package app

import (
	"context"
	"log"

	"github.com/louisbranch/homestream/internal/services/backends/journal"
)

// ResetDemoData restores the seed baseline in place.
func (a *App) ResetDemoData(ctx context.Context) error {
	log.Print("admin reset: restoring demo baseline")
	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	if err := a.Seed(ctx); err != nil {
		return err
	}
	a.record(ctx, "admin", "reset_demo_data", nil, map[string]string{"status": "ok"})
	return nil
}

// JournalEntries lists recorded operations, newest first.
func (a *App) JournalEntries(ctx context.Context, system string, limit int) ([]journal.Entry, error) {
	if a.journal == nil {
		return nil, nil
	}
	return a.journal.List(ctx, system, limit)
}
