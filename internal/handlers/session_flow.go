package handlers

import (
	"net/http"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/registry"
)

// StartRequest carries the landing form identifiers.
type StartRequest struct {
	Mobile string `json:"mobile"`
	PAN    string `json:"pan"`
}

// handleStart stores mobile and PAN and moves the session to the OTP view.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req StartRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := orch.Start(req.Mobile, req.PAN); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"view": orch.View()}})
}

// handleVerifyOTP completes mock verification and reveals the credit score.
// The one-time code itself carries no meaning in the simulated bureau.
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := orch.VerifyOTP(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"view": orch.View(),
			"user": orch.User(),
		},
	})
}

// handleLogoClick is the navbar shortcut transition.
func (s *Server) handleLogoClick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view := orch.LogoClick()
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"view": view}})
}

// handleDashboard returns the dashboard snapshot: profile, loans, aggregate
// savings and submitted applications.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	orch, err := s.verifiedSession(r)
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

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"view":                      orch.View(),
			"user":                      orch.User(),
			"loans":                     orch.Loans().ListLoans(filter),
			"potential_monthly_savings": orch.Loans().TotalPotentialMonthlySavings(),
			"applications":              orch.Applications(),
			"skip_intro":                orch.SkipIntro(),
		},
	})
}
