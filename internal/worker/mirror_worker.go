package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	applog "fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/store"
)

// MirrorWorker keeps an external mirror in sync with the store. Change
// messages only mark the mirror dirty; a ticker drives the actual
// rewrite, so a burst of edits costs one flush instead of one write
// per message.
type MirrorWorker struct {
	store    *store.Store
	client   *amqp.Client
	writer   sheets.MirrorWriter
	interval time.Duration
	dirty    atomic.Bool
}

func NewMirrorWorker(st *store.Store, client *amqp.Client, writer sheets.MirrorWriter, interval time.Duration) *MirrorWorker {
	w := &MirrorWorker{
		store:    st,
		client:   client,
		writer:   writer,
		interval: interval,
	}
	// Mirror state is unknown at startup, flush once regardless.
	w.dirty.Store(true)
	return w
}

// Run consumes change messages and flushes on a timer until ctx is
// cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.client.ConsumeLedgerChanges(ctx, func(msg *amqp.LedgerChangeMessage) error {
			slog.InfoContext(ctx, "Ledger change received",
				applog.FieldTxID, msg.ID,
				applog.FieldAction, msg.Action)
			w.dirty.Store(true)
			return nil
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if !w.dirty.Swap(false) {
					continue
				}
				if err := w.Flush(ctx); err != nil {
					slog.ErrorContext(ctx, "Mirror flush failed", applog.FieldError, err)
					// Try again next tick.
					w.dirty.Store(true)
				}
			}
		}
	})

	return g.Wait()
}

// Flush re-reads the document from the slot and rewrites the mirror.
// Reloading instead of trusting the in-memory list means a worker
// sharing the database with the web process mirrors what was actually
// persisted.
func (w *MirrorWorker) Flush(ctx context.Context) error {
	w.store.Load(ctx)
	list := w.store.List()
	if err := w.writer.Replace(ctx, list); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	slog.InfoContext(ctx, "Mirror flushed", applog.FieldCount, len(list))
	return nil
}
