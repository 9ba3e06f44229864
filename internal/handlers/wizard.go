package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/finmath"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/wizard"
)

// handleWizard starts a new application wizard (POST) or reports its
// current state (GET).
func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		wiz, err := orch.StartNewLoan()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Response{
			Success: true,
			Data: map[string]interface{}{
				"view": orch.View(),
				"step": wiz.Step(),
			},
		})
	case http.MethodGet:
		wiz := orch.Wizard()
		if wiz == nil {
			writeError(w, models.ErrInvalidTransition)
			return
		}
		data := map[string]interface{}{
			"step":    wiz.Step(),
			"label":   wiz.Step().String(),
			"pending": wiz.Pending(),
		}
		if wiz.Step() >= wizard.StepDocs {
			data["documents"] = wiz.UploadedDocuments()
		}
		if sel := wiz.SelectedOffer(); sel != nil {
			data["selected_offer"] = sel
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
	}
}

// WizardGoalRequest carries the step-1 form values.
type WizardGoalRequest struct {
	Amount       float64 `json:"amount"`
	TenureMonths int     `json:"tenure_months"`
	Purpose      string  `json:"purpose"`
	Employment   string  `json:"employment"`
	Income       string  `json:"income"`
}

// handleWizardGoal submits the loan goal and returns the EMI estimate for
// the requested amount at the default rate.
func (s *Server) handleWizardGoal(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req WizardGoalRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	input := wizard.GoalInput{
		Amount:        req.Amount,
		TenureMonths:  req.TenureMonths,
		Purpose:       req.Purpose,
		Employment:    models.EmploymentType(req.Employment),
		MonthlyIncome: req.Income,
	}
	if err := wiz.SubmitGoal(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}

	emi, err := finmath.DefaultEMI(req.Amount, req.TenureMonths)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"step":           wiz.Step(),
			"estimated_emi":  emi,
			"total_interest": finmath.TotalInterest(emi, req.TenureMonths, req.Amount),
			"documents":      wizard.RequiredDocuments(input.Employment),
		},
	})
}

// WizardUploadRequest identifies the KYC document being uploaded.
type WizardUploadRequest struct {
	DocumentID string `json:"document_id"`
}

// handleWizardUpload marks one KYC document as uploaded.
func (s *Server) handleWizardUpload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req WizardUploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := wiz.UploadDocument(req.DocumentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: wiz.UploadedDocuments()})
}

// handleWizardDocuments submits the documents step and advances to offers.
func (s *Server) handleWizardDocuments(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := wiz.SubmitDocuments(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"step": wiz.Step()}})
}

// handleWizardOffers returns the ranked offer list and the eligibility
// headline.
func (s *Server) handleWizardOffers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ranked, err := wiz.RankedOffers()
	if err != nil {
		writeError(w, err)
		return
	}
	maxEligible, err := wiz.MaxEligibleAmount()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"offers":       ranked,
			"max_eligible": maxEligible,
		},
	})
}

// WizardSelectOfferRequest identifies the chosen offer.
type WizardSelectOfferRequest struct {
	OfferID string `json:"offer_id"`
}

// handleWizardSelectOffer records the user's offer choice.
func (s *Server) handleWizardSelectOffer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req WizardSelectOfferRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := wiz.SelectOffer(req.OfferID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: wiz.SelectedOffer()})
}

// handleWizardProceed advances from offers to confirmation.
func (s *Server) handleWizardProceed(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := wiz.ProceedToConfirm(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"step": wiz.Step()}})
}

// WizardConsentRequest carries the data-sharing consent checkbox value.
type WizardConsentRequest struct {
	Consent bool `json:"consent"`
}

// handleWizardConsent records consent on the confirmation step.
func (s *Server) handleWizardConsent(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	wiz, err := s.wizardFor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req WizardConsentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := wiz.SetConsent(req.Consent); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true})
}

// handleWizardSubmit finalizes the application, folds it into the session
// and notifies operations in the background.
func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	wiz := orch.Wizard()
	if wiz == nil {
		writeError(w, models.ErrInvalidTransition)
		return
	}

	app, err := wiz.Submit(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := orch.CompleteNewLoan(); err != nil {
		writeError(w, err)
		return
	}

	// Ops notification must never block or fail the user flow.
	user := orch.User()
	go func(app models.LoanApplication) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.notifier.NotifyApplicationSubmitted(ctx, &app, user); err != nil {
			utils.GetLogger().Warn("Application notification failed",
				zap.String("application_id", app.ID),
				zap.Error(err),
			)
		}
	}(*app)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"application": app,
			"view":        orch.View(),
		},
	})
}

// handleWizardAbandon discards the in-progress wizard.
func (s *Server) handleWizardAbandon(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := orch.AbandonNewLoan(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"view": orch.View()}})
}

// wizardFor resolves the session's in-progress wizard.
func (s *Server) wizardFor(r *http.Request) (*wizard.Wizard, error) {
	orch, err := s.session(r)
	if err != nil {
		return nil, err
	}
	wiz := orch.Wizard()
	if wiz == nil {
		return nil, models.ErrInvalidTransition
	}
	return wiz, nil
}
