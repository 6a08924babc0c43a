package store

import (
	"context"
	"sync"
)

// DocumentSlot is one durable key-value slot holding the serialized
// transaction document. Slots carry no locking across processes: two
// processes sharing a slot race last-write-wins, the same hazard the
// browser-storage document format always had. That is accepted and
// documented, not engineered around.
type DocumentSlot interface {
	// Load returns the stored document, or ok=false when the slot is empty.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// MemorySlot keeps the document in process memory. It backs tests and
// the throwaway "memory" data backend.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemorySlot) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.set = false
	return nil
}

func (s *MemorySlot) Close() error { return nil }
