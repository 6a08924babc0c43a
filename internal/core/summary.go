package core

// Totals are the headline figures for a transaction list. Net is signed
// and canonical; displays that must not go below zero use IncomeLeft.
type Totals struct {
	Income      Money `json:"income"`
	Expense     Money `json:"expense"`
	Net         Money `json:"net"`
	SavingsRate int   `json:"savingsRate"`
}

// IncomeLeft is the floored-at-zero display variant of Net.
func (t Totals) IncomeLeft() Money {
	if t.Net.Cents < 0 {
		return Money{}
	}
	return t.Net
}

// CategoryAmount is the summed expense amount for one category.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// MonthTotal holds income and expense for one YYYY-MM bucket.
type MonthTotal struct {
	Month   string `json:"month"`
	Income  Money  `json:"income"`
	Expense Money  `json:"expense"`
}
