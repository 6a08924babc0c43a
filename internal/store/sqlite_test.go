package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteSlotRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")
	slot, err := NewSQLiteSlot(dbPath, "financeData")
	if err != nil {
		t.Fatalf("open slot: %v", err)
	}
	defer slot.Close()

	ctx := context.Background()

	if _, ok, err := slot.Load(ctx); err != nil || ok {
		t.Fatalf("fresh slot: ok=%v err=%v, want empty", ok, err)
	}

	doc := []byte(`{"transactions":[{"id":"1","date":"2024-01-01","type":"income","category":"Salary","amount":5000}]}`)
	if err := slot.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := slot.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != string(doc) {
		t.Errorf("document altered by round trip:\n%s\n%s", doc, got)
	}

	// Overwrite under the same key.
	if err := slot.Save(ctx, []byte(`{"transactions":[]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = slot.Load(ctx)
	if string(got) != `{"transactions":[]}` {
		t.Errorf("overwrite not visible: %s", got)
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := slot.Load(ctx); ok {
		t.Error("document still present after clear")
	}
}

func TestSQLiteSlotKeysAreIndependent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")
	a, err := NewSQLiteSlot(dbPath, "a")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	b, err := NewSQLiteSlot(dbPath, "b")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	if err := a.Save(ctx, []byte(`{"transactions":[]}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Load(ctx); ok {
		t.Error("key b sees key a's document")
	}
}
