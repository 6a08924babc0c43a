package query

import "fintrack/internal/core"

// Lister is the slice of the store the facade needs.
type Lister interface {
	List() []core.Transaction
}

// Facade composes filtering, sorting and aggregation into the one call a
// presentation layer makes whenever data, filters or sort state change.
// Every call re-reads the list from the store; the facade caches
// nothing, so it can never serve a list that drifted from what the
// store holds.
type Facade struct {
	store Lister
}

func NewFacade(store Lister) *Facade {
	return &Facade{store: store}
}

// Result is everything a presentation layer renders for one view. Rows
// are filtered and sorted; the aggregates are computed from the
// filtered list (row order does not affect sums).
type Result struct {
	Rows              []core.Transaction    `json:"rows"`
	Totals            core.Totals           `json:"totals"`
	ByCategory        []core.CategoryAmount `json:"byCategory"`
	ByMonth           []core.MonthTotal     `json:"byMonth"`
	CumulativeBalance []core.Money          `json:"cumulativeBalance"`
}

func (f *Facade) Query(filter FilterSpec, sortSpec SortSpec) Result {
	filtered := Filter(f.store.List(), filter)
	months := ByMonth(filtered)
	return Result{
		Rows:              Sort(filtered, sortSpec),
		Totals:            Totals(filtered),
		ByCategory:        ByCategory(filtered),
		ByMonth:           months,
		CumulativeBalance: CumulativeBalance(months),
	}
}
