package query

import (
	"math"
	"sort"

	"fintrack/internal/core"
)

// Totals sums a transaction list into the headline figures. The savings
// rate is net as a rounded percentage of income, short-circuited to 0
// when there is no income so division by zero never propagates.
func Totals(list []core.Transaction) core.Totals {
	var income, expense int64
	for _, t := range list {
		switch t.Type {
		case core.Income:
			income += t.Amount.Cents
		case core.Expense:
			expense += t.Amount.Cents
		}
	}
	net := income - expense

	rate := 0
	if income > 0 {
		rate = int(math.Round(float64(net) / float64(income) * 100))
	}

	return core.Totals{
		Income:      core.Money{Cents: income},
		Expense:     core.Money{Cents: expense},
		Net:         core.Money{Cents: net},
		SavingsRate: rate,
	}
}

// ByCategory totals expense amounts per category in first-seen order.
// Income is excluded; the breakdown feeds the expense chart and the
// top-category insight.
func ByCategory(list []core.Transaction) []core.CategoryAmount {
	idx := make(map[string]int)
	var out []core.CategoryAmount
	for _, t := range list {
		if t.Type != core.Expense {
			continue
		}
		i, ok := idx[t.Category]
		if !ok {
			i = len(out)
			idx[t.Category] = i
			out = append(out, core.CategoryAmount{Name: t.Category})
		}
		out[i].Amount.Cents += t.Amount.Cents
	}
	return out
}

// TopCategory picks the category with the highest expense total. Ties
// go to the category seen first. ok is false for an empty breakdown.
func TopCategory(breakdown []core.CategoryAmount) (name string, ok bool) {
	best := -1
	for i, c := range breakdown {
		if best < 0 || c.Amount.Cents > breakdown[best].Amount.Cents {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return breakdown[best].Name, true
}

// ByMonth buckets transactions by the YYYY-MM prefix of their date,
// ascending. Only months with at least one transaction appear; gaps are
// not zero-filled.
func ByMonth(list []core.Transaction) []core.MonthTotal {
	idx := make(map[string]int)
	var out []core.MonthTotal
	for _, t := range list {
		key := t.Date.MonthKey()
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, core.MonthTotal{Month: key})
		}
		switch t.Type {
		case core.Income:
			out[i].Income.Cents += t.Amount.Cents
		case core.Expense:
			out[i].Expense.Cents += t.Amount.Cents
		}
	}
	// Lexicographic equals chronological for ISO month keys.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CumulativeBalance is the running income-minus-expense prefix sum over
// a monthly series, recomputed fresh on each call.
func CumulativeBalance(series []core.MonthTotal) []core.Money {
	out := make([]core.Money, len(series))
	var run int64
	for i, m := range series {
		run += m.Income.Cents - m.Expense.Cents
		out[i] = core.Money{Cents: run}
	}
	return out
}

// AverageMonthlySavings spreads the net over a fixed horizon of months,
// floored at zero for display.
func AverageMonthlySavings(t core.Totals, months int) core.Money {
	if months <= 0 || t.Net.Cents <= 0 {
		return core.Money{}
	}
	return core.Money{Cents: int64(math.Round(float64(t.Net.Cents) / float64(months)))}
}
