// Package query implements the filter, sort and aggregation pipeline
// over the store's canonical transaction list. Everything here is a
// pure function: inputs are never mutated and no state is kept between
// calls.
package query

import (
	"strings"

	"fintrack/internal/core"
)

// FilterSpec selects transactions by inclusive date range and exact
// category match. Zero-value fields match everything, so the zero spec
// is a legal no-op; category-only filtering needs no dates.
type FilterSpec struct {
	Start    core.Date
	End      core.Date
	Category string
}

// Empty reports whether the spec has no predicates at all.
func (f FilterSpec) Empty() bool {
	return f.Start.IsZero() && f.End.IsZero() && f.Category == ""
}

// Key is a stable cache key for the spec.
func (f FilterSpec) Key() string {
	var b strings.Builder
	if !f.Start.IsZero() {
		b.WriteString(f.Start.String())
	}
	b.WriteByte('|')
	if !f.End.IsZero() {
		b.WriteString(f.End.String())
	}
	b.WriteByte('|')
	b.WriteString(f.Category)
	return b.String()
}

func (f FilterSpec) matches(t core.Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start.Time) {
		return false
	}
	// Dates carry no time component, so "after the end date" already
	// means a strictly later calendar day; the whole end day is included.
	if !f.End.IsZero() && t.Date.After(f.End.Time) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

// Filter returns the matching subsequence with input order preserved.
func Filter(list []core.Transaction, spec FilterSpec) []core.Transaction {
	if spec.Empty() {
		return append([]core.Transaction(nil), list...)
	}
	out := make([]core.Transaction, 0, len(list))
	for _, t := range list {
		if spec.matches(t) {
			out = append(out, t)
		}
	}
	return out
}
