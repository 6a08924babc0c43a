// Package store owns the canonical transaction list and its persistence
// to a durable document slot. All queries source their data from here;
// nothing else reads or writes the slot.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// Document is the persisted shape: one JSON object holding the full
// transaction list under a single storage key. It must round-trip
// byte-for-byte equivalent through load and save.
type Document struct {
	Transactions []core.Transaction `json:"transactions"`
}

// Store holds the canonical list in memory and writes the whole
// document through to the slot on every mutation. Insertion order is
// preserved and is the fallback neutral ordering.
type Store struct {
	mu     sync.Mutex
	slot   DocumentSlot
	seed   []byte
	list   []core.Transaction
	lastID int64
}

// New creates a store over a slot. seed is an optional bundled document
// consulted only when the slot is empty; pass nil to skip seeding.
func New(slot DocumentSlot, seed []byte) *Store {
	return &Store{slot: slot, seed: seed}
}

// Load reads the persisted document into memory, seeding from the
// bundled dataset when the slot is empty. It is fail-soft by contract:
// unreadable or malformed data degrades to an empty list with a
// warning, never an error, so startup always proceeds.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = nil

	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read persisted document, starting empty",
			applog.FieldError, err)
		return
	}

	if ok {
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			slog.WarnContext(ctx, "Persisted document is malformed, starting empty",
				applog.FieldError, err)
			return
		}
		if err := validateDocument(doc); err != nil {
			slog.WarnContext(ctx, "Persisted document is invalid, starting empty",
				applog.FieldError, err)
			return
		}
		s.list = doc.Transactions
		return
	}

	if len(s.seed) == 0 {
		return
	}

	var doc Document
	if err := json.Unmarshal(s.seed, &doc); err != nil {
		slog.WarnContext(ctx, "Seed document is malformed, starting empty",
			applog.FieldError, err)
		return
	}
	if err := validateDocument(doc); err != nil {
		slog.WarnContext(ctx, "Seed document is invalid, starting empty",
			applog.FieldError, err)
		return
	}
	s.list = doc.Transactions
	if err := s.persistLocked(ctx, "seed"); err != nil {
		slog.WarnContext(ctx, "Failed to persist seed document",
			applog.FieldError, err, applog.FieldCount, len(s.list))
	} else {
		slog.InfoContext(ctx, "Seeded store from bundled dataset",
			applog.FieldCount, len(s.list))
	}
}

// List returns a copy of the full transaction list in insertion order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.list...)
}

// Add validates and appends a transaction, assigning a fresh id when
// the record has none, and persists. The stored record is returned even
// when persisting fails (see PersistenceError).
func (s *Store) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.nextIDLocked()
	} else if s.indexLocked(t.ID) >= 0 {
		return core.Transaction{}, ErrDuplicateID
	}

	s.list = append(s.list, t)
	return t, s.persistLocked(ctx, "add")
}

// Update replaces the record with the given id in place, keeping its
// position so the insertion-order fallback is stable across edits. The
// record's id always stays the addressed id.
func (s *Store) Update(ctx context.Context, id string, t core.Transaction) (core.Transaction, error) {
	t.ID = id
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}
	s.list[i] = t
	return t, s.persistLocked(ctx, "update")
}

// Remove deletes the record with the given id and persists.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	s.list = append(s.list[:i], s.list[i+1:]...)
	return s.persistLocked(ctx, "remove")
}

// Reset clears both the in-memory list and the persisted document.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = nil
	if err := s.slot.Clear(ctx); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}
	return nil
}

// Close releases the underlying slot.
func (s *Store) Close() error {
	return s.slot.Close()
}

// validateDocument checks that a document about to be adopted keeps the
// store's invariants: every record valid, every id present and unique.
// A document that fails here is treated like malformed JSON, adopting
// it would make Update and Remove address the wrong record.
func validateDocument(doc Document) error {
	seen := make(map[string]struct{}, len(doc.Transactions))
	for i, t := range doc.Transactions {
		if t.ID == "" {
			return fmt.Errorf("transaction %d has no id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate transaction id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %q: %w", t.ID, err)
		}
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked issues creation-millisecond ids, bumped past any
// collision so a burst of adds within one millisecond stays unique and
// numerically ordered.
func (s *Store) nextIDLocked() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for s.indexLocked(strconv.FormatInt(id, 10)) >= 0 {
		id++
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

func (s *Store) persistLocked(ctx context.Context, op string) error {
	doc := Document{Transactions: s.list}
	if doc.Transactions == nil {
		doc.Transactions = []core.Transaction{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
