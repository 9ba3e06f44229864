// Package handlers provides the HTTP API surface for the FinScoreAI engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/advisory"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/avatar"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/services/ses"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
)

// Server holds all dependencies for the HTTP API.
type Server struct {
	sessions *SessionManager
	advisory advisory.Service
	avatar   *avatar.Generator
	notifier *ses.Service
}

// NewServer creates the API server.
func NewServer(sessions *SessionManager, adv advisory.Service, gen *avatar.Generator, notifier *ses.Service) *Server {
	return &Server{
		sessions: sessions,
		advisory: adv,
		avatar:   gen,
		notifier: notifier,
	}
}

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Routes registers all API endpoints on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/avatar", s.handleAvatar)

	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/session/start", s.handleStart)
	mux.HandleFunc("/api/session/verify-otp", s.handleVerifyOTP)
	mux.HandleFunc("/api/session/logo-click", s.handleLogoClick)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	mux.HandleFunc("/api/loans", s.handleLoans)
	mux.HandleFunc("/api/loans/reminder", s.handleToggleReminder)

	mux.HandleFunc("/api/switch/select", s.handleSwitchSelect)
	mux.HandleFunc("/api/switch", s.handleSwitchView)
	mux.HandleFunc("/api/switch/confirm", s.handleSwitchConfirm)
	mux.HandleFunc("/api/switch/back", s.handleSwitchBack)

	mux.HandleFunc("/api/wizard", s.handleWizard)
	mux.HandleFunc("/api/wizard/goal", s.handleWizardGoal)
	mux.HandleFunc("/api/wizard/upload", s.handleWizardUpload)
	mux.HandleFunc("/api/wizard/documents", s.handleWizardDocuments)
	mux.HandleFunc("/api/wizard/offers", s.handleWizardOffers)
	mux.HandleFunc("/api/wizard/select-offer", s.handleWizardSelectOffer)
	mux.HandleFunc("/api/wizard/proceed", s.handleWizardProceed)
	mux.HandleFunc("/api/wizard/consent", s.handleWizardConsent)
	mux.HandleFunc("/api/wizard/submit", s.handleWizardSubmit)
	mux.HandleFunc("/api/wizard/abandon", s.handleWizardAbandon)

	mux.HandleFunc("/api/insights", s.handleInsights)
	mux.HandleFunc("/api/chat", s.handleChat)

	return mux
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		utils.GetLogger().Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP statuses and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, models.ErrLoanNotFound),
		errors.Is(err, models.ErrOfferNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrTransitionPending):
		status = http.StatusConflict
	case errors.Is(err, models.ErrSessionNotVerified):
		status = http.StatusForbidden
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, Response{Success: false, Error: err.Error()})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// requireMethod rejects requests with the wrong verb.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
		return false
	}
	return true
}
