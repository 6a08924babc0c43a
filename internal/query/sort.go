package query

import (
	"sort"
	"strconv"

	"fintrack/internal/core"
)

const (
	ColumnNone   Column = ""
	ColumnDate   Column = "date"
	ColumnAmount Column = "amount"
)

const (
	OrderNone Order = ""
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

type (
	Column string
	Order  string
)

func (c Column) Valid() bool {
	return c == ColumnNone || c == ColumnDate || c == ColumnAmount
}

func (o Order) Valid() bool {
	return o == OrderNone || o == OrderAsc || o == OrderDesc
}

// SortSpec is the active sort: one column, one direction. The zero spec
// means no active sort, which yields the neutral order.
type SortSpec struct {
	Column Column
	Order  Order
}

// Cycle advances the tri-state sort for a column click: none, asc,
// desc, then back to none. Clicking a different column always starts
// at asc.
func (s SortSpec) Cycle(col Column) SortSpec {
	if s.Column != col {
		return SortSpec{Column: col, Order: OrderAsc}
	}
	switch s.Order {
	case OrderAsc:
		return SortSpec{Column: col, Order: OrderDesc}
	case OrderDesc:
		return SortSpec{}
	default:
		return SortSpec{Column: col, Order: OrderAsc}
	}
}

// Sort returns a new ordered slice; the input is never reordered.
// Without an active column it returns the neutral order. Ties keep
// their original relative order in both directions: desc reverses the
// comparator, not the result.
func Sort(list []core.Transaction, spec SortSpec) []core.Transaction {
	out := append([]core.Transaction(nil), list...)

	if spec.Column == ColumnNone || spec.Order == OrderNone {
		neutralOrder(out)
		return out
	}

	var less func(a, b core.Transaction) bool
	switch spec.Column {
	case ColumnDate:
		less = func(a, b core.Transaction) bool { return a.Date.Before(b.Date.Time) }
	case ColumnAmount:
		less = func(a, b core.Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	default:
		neutralOrder(out)
		return out
	}
	if spec.Order == OrderDesc {
		asc := less
		less = func(a, b core.Transaction) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// neutralOrder sorts by ascending numeric id. Ids are normally
// creation-millisecond tokens, so this is creation order no matter what
// sequence filtering produced. If any id is not numeric the incoming
// order (the store's insertion order) is left alone.
func neutralOrder(list []core.Transaction) {
	keys := make([]int64, len(list))
	for i, t := range list {
		n, err := strconv.ParseInt(t.ID, 10, 64)
		if err != nil {
			return
		}
		keys[i] = n
	}

	type keyed struct {
		key int64
		t   core.Transaction
	}
	pairs := make([]keyed, len(list))
	for i := range list {
		pairs[i] = keyed{key: keys[i], t: list[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	for i := range pairs {
		list[i] = pairs[i].t
	}
}
