package http

import (
	"fmt"
	"net/http"
	"net/url"

	"fintrack/internal/core"
	"fintrack/internal/query"
)

// parseFilterSpec builds a filter from startDate, endDate and category
// query parameters. Malformed dates are a caller error, not an empty
// filter.
func parseFilterSpec(values url.Values) (query.FilterSpec, error) {
	var spec query.FilterSpec

	if v := sanitizeInput(values.Get("startDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("startDate: %w", err)
		}
		spec.Start = d
	}
	if v := sanitizeInput(values.Get("endDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("endDate: %w", err)
		}
		spec.End = d
	}
	spec.Category = sanitizeInput(values.Get("category"))

	return spec, nil
}

func parseSortSpec(values url.Values) (query.SortSpec, error) {
	spec := query.SortSpec{
		Column: query.Column(sanitizeInput(values.Get("sort"))),
		Order:  query.Order(sanitizeInput(values.Get("order"))),
	}
	if !spec.Column.Valid() {
		return query.SortSpec{}, fmt.Errorf("unknown sort column %q", spec.Column)
	}
	if !spec.Order.Valid() {
		return query.SortSpec{}, fmt.Errorf("unknown sort order %q", spec.Order)
	}
	return spec, nil
}

// parseTransaction decodes a transaction payload. The id is never taken
// from the body; the store or the URL decides it.
func parseTransaction(r *http.Request) (core.Transaction, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return core.Transaction{}, fmt.Errorf("parse body: %w", err)
	}

	date, err := core.ParseDate(p.Get("date"))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		Date:        date,
		Type:        core.TxType(p.Get("type")),
		Category:    p.Get("category"),
		Amount:      amount,
		Description: p.Get("description"),
	}, nil
}

// handleTransactions serves GET (filtered, sorted listing with
// aggregates) and POST (create) on /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sortSpec, err := parseSortSpec(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.facade.Query(filter, sortSpec))
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := parseTransaction(r)
	if err != nil {
		if core.IsValidation(err) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		} else {
			writeBadRequest(w, err.Error())
		}
		return
	}

	added, err := s.svc.Add(r.Context(), t)
	if err != nil {
		s.dashCache.Clear()
		writeError(w, r, err)
		return
	}

	s.dashCache.Clear()
	writeJSON(w, http.StatusCreated, added)
}

// handleTransactionByID serves PUT and DELETE on /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/transactions/")
	if id == "" {
		writeBadRequest(w, "missing transaction id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	t, err := parseTransaction(r)
	if err != nil {
		if core.IsValidation(err) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		} else {
			writeBadRequest(w, err.Error())
		}
		return
	}

	updated, err := s.svc.Update(r.Context(), id, t)
	if err != nil {
		s.dashCache.Clear()
		writeError(w, r, err)
		return
	}

	s.dashCache.Clear()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.svc.Remove(r.Context(), id); err != nil {
		s.dashCache.Clear()
		writeError(w, r, err)
		return
	}

	s.dashCache.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleReset wipes every transaction. POST only, there is no undo.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	if err := s.svc.Reset(r.Context()); err != nil {
		s.dashCache.Clear()
		writeError(w, r, err)
		return
	}

	s.dashCache.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
