package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Update and Remove for ids the store does
// not hold.
var ErrNotFound = errors.New("transaction not found")

// ErrDuplicateID rejects an Add that carries an id already in the store.
var ErrDuplicateID = errors.New("duplicate transaction id")

// PersistenceError reports a failed write to the document slot. The
// in-memory mutation that triggered the write is kept, not rolled back,
// so memory and the durable document can disagree until the next
// successful persist. Callers surface the error; they do not retry the
// mutation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
