package handlers

import (
	"net/http"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

// SwitchSelectRequest identifies the loan to open the switch-offer screen for.
type SwitchSelectRequest struct {
	LoanID string `json:"loan_id"`
}

// handleSwitchSelect moves DASHBOARD -> SWITCH_OFFER for a switchable loan.
func (s *Server) handleSwitchSelect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req SwitchSelectRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	loan, err := orch.SelectLoanForSwitch(req.LoanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"view": orch.View(),
			"loan": loan,
		},
	})
}

// handleSwitchView returns the switch-offer screen data: the carried loan,
// the refinance lender catalog and an advisory analysis of the switch.
func (s *Server) handleSwitchView(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	loan := orch.SelectedLoan()
	if loan == nil {
		writeError(w, models.ErrInvalidTransition)
		return
	}

	var analysis string
	if loan.SwitchOffer != nil {
		analysis = s.advisory.RefinanceAnalysis(r.Context(), loan, loan.SwitchOffer.NewRate)
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"loan":     loan,
			"lenders":  orch.RefinanceLenders(),
			"analysis": analysis,
		},
	})
}

// SwitchConfirmRequest identifies the refinance lender to hand over to.
type SwitchConfirmRequest struct {
	LenderID string `json:"lender_id"`
}

// handleSwitchConfirm runs the simulated refinance handover.
func (s *Server) handleSwitchConfirm(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req SwitchConfirmRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	lender, err := orch.ConfirmSwitch(r.Context(), req.LenderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: lender})
}

// SwitchBackRequest signals whether the switch completed successfully.
type SwitchBackRequest struct {
	Success bool `json:"success"`
}

// handleSwitchBack returns to the dashboard from the switch-offer screen.
func (s *Server) handleSwitchBack(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req SwitchBackRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := orch.ReturnFromSwitch(req.Success); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"view": orch.View()}})
}
