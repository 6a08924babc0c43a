package sheets

import (
	"context"

	"fintrack/internal/core"
)

// MirrorWriter replaces the mirrored transaction list wholesale. The
// local store is the source of truth; the mirror is a read-only copy,
// so a full rewrite per flush keeps it correct without row tracking.
type MirrorWriter interface {
	Replace(ctx context.Context, list []core.Transaction) error
}
