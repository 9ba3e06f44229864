package handlers

import (
	"net/http"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/registry"
)

// handleLoans lists the session's loan accounts, optionally filtered.
func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	filter := registry.LoanFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = registry.FilterAll
	}
	if !filter.IsValid() {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid loan filter"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: orch.Loans().ListLoans(filter)})
}

// ReminderRequest identifies the loan whose EMI reminder should flip.
type ReminderRequest struct {
	LoanID string `json:"loan_id"`
}

// handleToggleReminder flips the EMI reminder flag on one loan.
func (s *Server) handleToggleReminder(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ReminderRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	loan, err := orch.Loans().ToggleReminder(req.LoanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: loan})
}
