package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestReplaceKeepsOnlyLatestList(t *testing.T) {
	m := New()
	ctx := context.Background()

	first := []core.Transaction{{ID: "1", Category: "Food"}}
	second := []core.Transaction{{ID: "2", Category: "Rent"}, {ID: "3", Category: "Food"}}

	if err := m.Replace(ctx, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := m.Replace(ctx, second); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got := m.Transactions()
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("got %+v", got)
	}
	if m.Replaces() != 2 {
		t.Errorf("replaces = %d, want 2", m.Replaces())
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	m := New()
	list := []core.Transaction{{ID: "1"}}
	if err := m.Replace(context.Background(), list); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list[0].ID = "mutated"
	if m.Transactions()[0].ID != "1" {
		t.Error("mirror aliased caller's slice")
	}
}

func TestReplaceEmptyList(t *testing.T) {
	m := New()
	if err := m.Replace(context.Background(), nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(m.Transactions()) != 0 {
		t.Errorf("got %+v", m.Transactions())
	}
}
