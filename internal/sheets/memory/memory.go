package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	ports "fintrack/internal/sheets"
)

// Mirror is an in-memory MirrorWriter for tests and local development
// without Google credentials.
type Mirror struct {
	mu       sync.Mutex
	last     []core.Transaction
	replaces int
}

var _ ports.MirrorWriter = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) Replace(_ context.Context, list []core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append([]core.Transaction(nil), list...)
	m.replaces++
	return nil
}

// Transactions returns a copy of the last mirrored list.
func (m *Mirror) Transactions() []core.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Transaction(nil), m.last...)
}

// Replaces reports how many times the mirror was rewritten.
func (m *Mirror) Replaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}
