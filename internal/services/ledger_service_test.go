package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishLedgerChange(_ context.Context, id, action string) error {
	p.events = append(p.events, action+":"+id)
	return p.err
}

func testTx() core.Transaction {
	d, _ := core.ParseDate("2024-01-15")
	return core.Transaction{Date: d, Type: core.Expense, Category: "Food", Amount: core.Money{Cents: 1250}}
}

func newTestService(t *testing.T, slot store.DocumentSlot) (*LedgerService, *recordingPublisher) {
	t.Helper()
	st := store.New(slot, nil)
	st.Load(context.Background())
	pub := &recordingPublisher{}
	return NewLedgerService(st, pub), pub
}

func TestAddPublishesChange(t *testing.T) {
	svc, pub := newTestService(t, store.NewMemorySlot())

	added, err := svc.Add(context.Background(), testTx())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0] != amqp.ActionAdded+":"+added.ID {
		t.Errorf("events = %v", pub.events)
	}
}

func TestInvalidAddDoesNotPublish(t *testing.T) {
	svc, pub := newTestService(t, store.NewMemorySlot())

	bad := testTx()
	bad.Category = ""
	if _, err := svc.Add(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}
	if len(pub.events) != 0 {
		t.Errorf("validation failure must not publish, got %v", pub.events)
	}
}

func TestUpdateRemoveResetPublish(t *testing.T) {
	svc, pub := newTestService(t, store.NewMemorySlot())
	ctx := context.Background()

	added, err := svc.Add(ctx, testTx())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	edit := testTx()
	edit.Amount = core.Money{Cents: 9900}
	if _, err := svc.Update(ctx, added.ID, edit); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Remove(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	want := []string{
		amqp.ActionAdded + ":" + added.ID,
		amqp.ActionUpdated + ":" + added.ID,
		amqp.ActionRemoved + ":" + added.ID,
		amqp.ActionReset + ":",
	}
	if len(pub.events) != len(want) {
		t.Fatalf("events = %v, want %v", pub.events, want)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, pub.events[i], want[i])
		}
	}
}

func TestRemoveMissingDoesNotPublish(t *testing.T) {
	svc, pub := newTestService(t, store.NewMemorySlot())

	if err := svc.Remove(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("events = %v", pub.events)
	}
}

type brokenSlot struct {
	*store.MemorySlot
}

func (s *brokenSlot) Save(context.Context, []byte) error {
	return errors.New("disk full")
}

func TestPersistenceFailureStillPublishes(t *testing.T) {
	svc, pub := newTestService(t, &brokenSlot{store.NewMemorySlot()})

	_, err := svc.Add(context.Background(), testTx())
	var pe *store.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	// The in-memory list changed, so consumers hear about it even
	// though the write-through failed.
	if len(pub.events) != 1 {
		t.Errorf("events = %v, want one added event", pub.events)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	st := store.New(store.NewMemorySlot(), nil)
	st.Load(context.Background())
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewLedgerService(st, pub)

	added, err := svc.Add(context.Background(), testTx())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(svc.List()) != 1 || svc.List()[0].ID != added.ID {
		t.Errorf("transaction should be stored despite publish failure")
	}
}

func TestNilPublisher(t *testing.T) {
	st := store.New(store.NewMemorySlot(), nil)
	st.Load(context.Background())
	svc := NewLedgerService(st, nil)

	if _, err := svc.Add(context.Background(), testTx()); err != nil {
		t.Fatalf("add with nil publisher: %v", err)
	}
}
