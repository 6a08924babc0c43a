package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/query"
)

// averageSavingsMonths is the fixed horizon the savings insight spreads
// the net over.
const averageSavingsMonths = 6

// dashboardPayload is everything the dashboard view renders in one
// round trip.
type dashboardPayload struct {
	Totals            core.Totals           `json:"totals"`
	IncomeLeft        core.Money            `json:"incomeLeft"`
	ByCategory        []core.CategoryAmount `json:"byCategory"`
	ByMonth           []core.MonthTotal     `json:"byMonth"`
	CumulativeBalance []core.Money          `json:"cumulativeBalance"`
	Count             int                   `json:"count"`
	TopCategory       string                `json:"topCategory"`
	AverageSavings    core.Money            `json:"averageSavings"`
}

// handleDashboard serves GET /api/dashboard. Results are cached per
// filter; any mutation clears the cache, so entries can only go stale
// through the TTL when another process writes the shared database.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	key := filter.Key()
	if payload, found := s.dashCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "key", key)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	res := s.facade.Query(filter, query.SortSpec{})
	top, _ := query.TopCategory(res.ByCategory)
	payload := dashboardPayload{
		Totals:            res.Totals,
		IncomeLeft:        res.Totals.IncomeLeft(),
		ByCategory:        res.ByCategory,
		ByMonth:           res.ByMonth,
		CumulativeBalance: res.CumulativeBalance,
		Count:             len(res.Rows),
		TopCategory:       top,
		AverageSavings:    query.AverageMonthlySavings(res.Totals, averageSavingsMonths),
	}

	s.dashCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}
