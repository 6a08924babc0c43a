package services

import (
	"context"
	"errors"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// ChangePublisher notifies interested consumers that the ledger
// changed. Implementations must not block mutations for long.
type ChangePublisher interface {
	PublishLedgerChange(ctx context.Context, id, action string) error
}

// LedgerService wraps the store with change notification. Every
// successful mutation emits a best-effort event; publish failures are
// logged and never surface to the caller, the mutation already
// happened.
type LedgerService struct {
	store     *store.Store
	publisher ChangePublisher
}

// NewLedgerService creates the service. publisher may be nil, in which
// case mutations simply skip notification.
func NewLedgerService(st *store.Store, publisher ChangePublisher) *LedgerService {
	return &LedgerService{store: st, publisher: publisher}
}

func (s *LedgerService) List() []core.Transaction {
	return s.store.List()
}

func (s *LedgerService) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	added, err := s.store.Add(ctx, t)
	if applied(err) {
		s.notify(ctx, added.ID, amqp.ActionAdded)
	}
	return added, err
}

func (s *LedgerService) Update(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	updated, err := s.store.Update(ctx, id, t)
	if applied(err) {
		s.notify(ctx, id, amqp.ActionUpdated)
	}
	return updated, err
}

func (s *LedgerService) Remove(ctx context.Context, id string) error {
	err := s.store.Remove(ctx, id)
	if applied(err) {
		s.notify(ctx, id, amqp.ActionRemoved)
	}
	return err
}

func (s *LedgerService) Reset(ctx context.Context) error {
	err := s.store.Reset(ctx)
	if applied(err) {
		s.notify(ctx, "", amqp.ActionReset)
	}
	return err
}

// applied reports whether the mutation took effect in memory. A
// persistence error means the write-through failed but the in-memory
// list did change, so consumers still need to hear about it.
func applied(err error) bool {
	var pe *store.PersistenceError
	return err == nil || errors.As(err, &pe)
}

func (s *LedgerService) notify(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChange(ctx, id, action); err != nil {
		// Don't fail the request, the mutation is already in.
		slog.WarnContext(ctx, "Failed to publish ledger change",
			applog.FieldTxID, id,
			applog.FieldAction, action,
			applog.FieldError, err)
	}
}
