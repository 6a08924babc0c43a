package query

import (
	"testing"

	"fintrack/internal/core"
)

func tx(id, date, category string, typ core.TxType, cents int64) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{ID: id, Date: d, Type: typ, Category: category, Amount: core.Money{Cents: cents}}
}

func date(s string) core.Date {
	d, _ := core.ParseDate(s)
	return d
}

func ids(list []core.Transaction) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a []core.Transaction, want ...string) bool {
	got := ids(a)
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

var filterFixture = []core.Transaction{
	tx("1", "2024-01-05", "Food", core.Expense, 100),
	tx("2", "2024-01-20", "Rent", core.Expense, 200),
	tx("3", "2024-02-01", "Food", core.Expense, 300),
	tx("4", "2024-02-15", "Salary", core.Income, 400),
}

func TestFilterDateRange(t *testing.T) {
	cases := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"no predicates", FilterSpec{}, []string{"1", "2", "3", "4"}},
		{"start only", FilterSpec{Start: date("2024-01-20")}, []string{"2", "3", "4"}},
		{"end only", FilterSpec{End: date("2024-01-20")}, []string{"1", "2"}}, // end day inclusive
		{"start and end", FilterSpec{Start: date("2024-01-06"), End: date("2024-02-01")}, []string{"2", "3"}},
		{"category only", FilterSpec{Category: "Food"}, []string{"1", "3"}},
		{"category case-sensitive", FilterSpec{Category: "food"}, nil},
		{"combined", FilterSpec{Start: date("2024-02-01"), Category: "Food"}, []string{"3"}},
		{"empty range", FilterSpec{Start: date("2025-01-01")}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(filterFixture, tc.spec)
			if !sameIDs(got, tc.want...) {
				t.Errorf("got %v, want %v", ids(got), tc.want)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	spec := FilterSpec{Start: date("2024-01-10"), Category: "Food"}
	once := Filter(filterFixture, spec)
	twice := Filter(once, spec)
	if !sameIDs(twice, ids(once)...) {
		t.Errorf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterEmptySpecIsNoOp(t *testing.T) {
	got := Filter(filterFixture, FilterSpec{})
	if !sameIDs(got, "1", "2", "3", "4") {
		t.Errorf("empty spec changed the list: %v", ids(got))
	}
	// And it copies rather than aliasing the input.
	got[0].ID = "mutated"
	if filterFixture[0].ID != "1" {
		t.Error("filter aliases its input")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	shuffled := []core.Transaction{filterFixture[2], filterFixture[0], filterFixture[3], filterFixture[1]}
	got := Filter(shuffled, FilterSpec{End: date("2024-02-28")})
	if !sameIDs(got, "3", "1", "4", "2") {
		t.Errorf("filter reordered: %v", ids(got))
	}
}

func TestFilterSpecKey(t *testing.T) {
	a := FilterSpec{Start: date("2024-01-01"), Category: "Food"}
	b := FilterSpec{Start: date("2024-01-01"), Category: "Food"}
	c := FilterSpec{End: date("2024-01-01"), Category: "Food"}
	if a.Key() != b.Key() {
		t.Error("equal specs produced different keys")
	}
	if a.Key() == c.Key() {
		t.Error("start and end collapsed into the same key")
	}
}
